package mapview

import (
	"sync"

	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

// Recorder is a Surface that keeps every command it receives.
// It backs the CLI and tests where no browser is attached.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Render(markers []models.Marker, focus models.ViewFocus, selectedID *int) {
	r.record(RenderCommand(markers, focus, selectedID))
}

func (r *Recorder) FlyTo(center models.Location, zoom int) {
	r.record(FlyToCommand(center, zoom))
}

func (r *Recorder) record(c Command) {
	r.mu.Lock()
	r.commands = append(r.commands, c)
	r.mu.Unlock()
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Last returns the most recent command, if any.
func (r *Recorder) Last() (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.commands) == 0 {
		return Command{}, false
	}
	return r.commands[len(r.commands)-1], true
}
