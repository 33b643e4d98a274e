package midi

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/model"
)

var ErrPortNotFound = errors.New("midi output port not found")

// Sender delivers one message to an output port.
type Sender func(msg gomidi.Message) error

// Player plays steps note by note: every pitch sounds for NoteDuration and a
// Pause separates chords.
type Player struct {
	NoteDuration time.Duration
	Pause        time.Duration
	Velocity     uint8
	Logger       *log.Logger

	send  Sender
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPlayer(send Sender) *Player {
	return &Player{
		NoteDuration: constants.ChordDuration,
		Pause:        constants.PauseDuration,
		Velocity:     constants.MidiVelocity,
		Logger:       log.New(io.Discard),
		send:         send,
		sleep:        sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Play blocks until every step has sounded or ctx is done. A note that was
// started is always stopped.
func (p *Player) Play(ctx context.Context, steps []model.Step) error {
	for _, step := range steps {
		p.Logger.Info("playing", "chord", step.Chord, "arrangement", step.Arrangement, "voicing", step.Voicing)
		for _, pitch := range step.Voicing {
			if err := p.playNote(ctx, uint8(pitch)); err != nil {
				return err
			}
		}
		if err := p.sleep(ctx, p.Pause); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) playNote(ctx context.Context, key uint8) error {
	if err := p.send(gomidi.NoteOn(0, key, p.Velocity)); err != nil {
		return errors.Wrapf(err, "note on %d", key)
	}
	waitErr := p.sleep(ctx, p.NoteDuration)
	if err := p.send(gomidi.NoteOffVelocity(0, key, p.Velocity)); err != nil {
		return errors.Wrapf(err, "note off %d", key)
	}
	return waitErr
}

// OpenPort finds the first output port whose name contains name. A driver
// must be registered by the caller (see cmd).
func OpenPort(name string) (Sender, func() error, error) {
	out, err := gomidi.FindOutPort(name)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrPortNotFound, "%q", name)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %q", name)
	}
	return send, out.Close, nil
}

// OutPorts lists the output port names of the registered driver.
func OutPorts() []string {
	var res []string
	for _, port := range gomidi.GetOutPorts() {
		res = append(res, port.String())
	}
	return res
}
