package http

import (
	"bytes"
	"context"
	stdhttp "net/http"

	"github.com/a-h/templ"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const htmlContentType = "text/html; charset=utf-8"

func renderComponent(ctx context.Context, component templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, eris.Wrap(err, "error rendering component")
	}
	return buf.Bytes(), nil
}

func (s *Server) writePage(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, component templ.Component) {
	body, err := renderComponent(r.Context(), component)
	if err != nil {
		s.reportError(r, err, "rendering page failed")
		stdhttp.Error(w, "Internal Server Error", stdhttp.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(status)
	if r.Method != stdhttp.MethodHead {
		if _, err := w.Write(body); err != nil {
			s.reportError(r, err, "writing page response failed")
		}
	}
}

func (s *Server) reportError(r *stdhttp.Request, err error, message string) {
	if s.logger != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"request_id": RequestIDFromContext(r.Context()),
			"path":       r.URL.Path,
		}).Error(message)
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
