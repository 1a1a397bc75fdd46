package notify

import (
	"io"
	"strings"
	"sync"

	"github.com/balkashynov/lifeos/internal/timer"
)

// Bell plays cues by ringing the terminal bell: once for the warning and
// three times for the end of a session. Muting is done by not installing
// a Bell at all.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(sound timer.Sound) error {
	rings := 1
	if sound == timer.SoundFinish {
		rings = 3
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, strings.Repeat("\a", rings))
	return err
}
