package app

import (
	"fmt"
	"log/slog"
	"net/http"
)

const (
	maxFormBytes    = 64 << 10
	htmlContentType = "text/html; charset=utf-8"
)

func (a App) index(s *sessions) ComponentHandler {
	return func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		sub, err := s.get(w, r)

		if err != nil {
			return a.errorResponse(get500(), err)
		}

		// a fresh page load starts over
		sub.Reset()

		return &ComponentResponse{Component: a.ComponentBuilder.Index(QuickFixView{State: sub.State()}), Code: 200, Message: "OK", ContentType: htmlContentType, Error: nil}
	}
}

func (a App) quickFix(s *sessions) ComponentHandler {
	return func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

		if err := r.ParseForm(); err != nil {
			return a.errorResponse(get400(), err)
		}

		sub, err := s.get(w, r)

		if err != nil {
			return a.errorResponse(get500(), err)
		}

		sentence := r.PostFormValue("sentence")
		state, outcome := sub.Submit(r.Context(), sentence)

		switch outcome {
		case Settled:
			slog.Info(fmt.Sprintf("quick fix %s", state))
		case Superseded:
			slog.Info("quick fix superseded by a newer submission")
		}

		view := QuickFixView{Sentence: sentence, State: state}

		if !isHtmx(r) {
			return &ComponentResponse{Component: a.ComponentBuilder.Index(view), Code: 200, Message: "OK", ContentType: htmlContentType, Error: nil}
		}

		// nothing to swap in; htmx re-enables the form on its own
		if outcome != Settled {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		return &ComponentResponse{Component: a.ComponentBuilder.QuickFix(view), Code: 200, Message: "OK", ContentType: htmlContentType, Error: nil}
	}
}

func (a App) errorPage(e errCtx) ComponentHandler {
	return func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		return a.errorResponse(e, nil)
	}
}

func (a App) errorResponse(e errCtx, err error) *ComponentResponse {
	return &ComponentResponse{Component: a.ComponentBuilder.Error(e.Code, e.Title, e.Msg), Code: e.Code, Message: e.Msg, ContentType: htmlContentType, Error: err}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
