package journal

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	}
}

func TestShared_SingleInstanceUnderConcurrency(t *testing.T) {
	const callers = 64

	var wg sync.WaitGroup
	got := make([]*Journal, callers)
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			got[i] = Shared()
		}(i)
	}
	close(start)
	wg.Wait()

	first := Shared()
	require.NotNil(t, first)
	for i, j := range got {
		assert.Same(t, first, j, "caller %d got a different journal", i)
	}
	assert.Equal(t, int32(1), constructed.Load())
}

func TestJournal_WriteFormatsAndEchoes(t *testing.T) {
	var out bytes.Buffer
	j := New(&out, WithClock(fixedClock()))

	j.Write("message")

	assert.Equal(t, []string{"[2024-05-01 12:00:00] message"}, j.History())
	assert.Equal(t, "[2024-05-01 12:00:00] message\n", out.String())
}

func TestJournal_NilWriterSkipsEcho(t *testing.T) {
	j := New(nil)
	j.Write("quiet")
	assert.Equal(t, 1, j.Len())
}

func TestJournal_HistoryIsSnapshot(t *testing.T) {
	j := New(nil, WithClock(fixedClock()))
	j.Write("first")
	j.Write("second")

	h1 := j.History()
	h2 := j.History()
	assert.Equal(t, h1, h2)

	h1[0] = "tampered"
	assert.Equal(t, h2, j.History())
	assert.Equal(t, 2, j.Len())

	entries := j.Entries()
	entries[1].Message = "tampered"
	assert.Equal(t, "second", j.Entries()[1].Message)
}

func TestJournal_PreservesInsertionOrder(t *testing.T) {
	j := New(nil, WithClock(fixedClock()))
	for _, msg := range []string{"a", "b", "c"} {
		j.Write(msg)
	}

	history := j.History()
	require.Len(t, history, 3)
	assert.Contains(t, history[0], "] a")
	assert.Contains(t, history[1], "] b")
	assert.Contains(t, history[2], "] c")
}

func TestJournal_ConcurrentWrites(t *testing.T) {
	var out bytes.Buffer
	j := New(&out)

	const writers, perWriter = 16, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				j.Write("tick")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, j.Len())
	assert.Equal(t, writers*perWriter, bytes.Count(out.Bytes(), []byte("\n")))
}
