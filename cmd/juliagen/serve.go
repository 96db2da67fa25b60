package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"time"

	"github.com/gogpu/julia"
	"github.com/gogpu/julia/stream"
)

func runServe(ctx context.Context, g *globals, args []string) error {
	p := g.params
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	paramFlags(fs, &p)
	trajectoryFlags(fs, &p)
	fs.IntVar(&p.FrameRate, "fps", p.FrameRate, "frames per second sent to clients")
	var (
		addr = fs.String("addr", ":8080", "listen address")
		loop = fs.Bool("loop", true, "restart the trajectory when it ends")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.FrameCount == 0 {
		return errors.New("serve: no frames to stream")
	}
	if p.FrameRate <= 0 {
		p.FrameRate = 30
	}

	s, err := julia.NewSynthesizer(p.Config(), g.options()...)
	if err != nil {
		return err
	}
	defer s.Close()

	hub := stream.NewHub(stream.Options{})
	defer hub.Close()
	srv := stream.NewServer(*addr, hub)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	julia.Logger().Info("juliagen: serving", slog.String("addr", *addr))

	err = play(ctx, s, hub, p.Trajectory(), time.Second/time.Duration(p.FrameRate), *loop, errc)
	if err != nil && !errors.Is(err, context.Canceled) {
		_ = srv.Close()
		return err
	}

	if !errors.Is(err, context.Canceled) {
		// The trajectory ended without looping; keep serving the last frame.
		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
		}
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// play renders the trajectory into the hub at one frame per interval.
func play(ctx context.Context, s *julia.Synthesizer, hub *stream.Hub, t julia.Trajectory,
	interval time.Duration, loop bool, errc <-chan error,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for cycle := 0; ; cycle++ {
		for f := range t.All() {
			r, err := s.Render(f.C, f.Palette)
			if err != nil {
				return err
			}
			if err := hub.WriteFrame(ctx, f, r); err != nil {
				return err
			}

			select {
			case <-ticker.C:
			case err := <-errc:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		julia.Logger().Debug("juliagen: cycle finished",
			slog.Int("cycle", cycle),
			slog.Int("clients", hub.Clients()))
		if !loop {
			return nil
		}
	}
}
