package notesvc

import (
	"context"
	"errors"
	"net/http"
	"time"

	"brain/internal/logging"
)

type Server struct {
	addr   string
	api    *API
	server *http.Server
	logger logging.Logger
}

func NewServer(addr string, notes NoteLister, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		addr:   addr,
		api:    &API{Notes: notes, Logger: logger},
		logger: logger,
	}
}

// Run serves until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("notes_service_listening", logging.F("addr", "http://"+s.addr))
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
