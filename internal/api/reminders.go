// internal/api/reminders.go
package api

import (
	stderrors "errors"
	"net/http"

	"mafatih/internal/common/errors"
	"mafatih/internal/reminder"
)

func (s *Server) handleSendReminder(w http.ResponseWriter, r *http.Request) {
	if s.deps.Reminders == nil {
		writeError(w, errors.NewNotificationChannelDisabledError("all"))
		return
	}

	var req reminder.Request
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	rem, err := s.deps.Reminders.Send(r.Context(), req)
	switch {
	case stderrors.Is(err, reminder.ErrInvalidReminder):
		writeError(w, errors.NewInvalidInputError(err.Error()))
		return
	case stderrors.Is(err, reminder.ErrDeliveryFailed):
		writeError(w, errors.NewNotificationSendFailedError(string(req.Channel), err).
			WithMetadata("reminderId", rem.ID))
		return
	case err != nil:
		writeError(w, err)
		return
	}

	if rem.Status == reminder.StatusDisabled {
		writeError(w, errors.NewNotificationChannelDisabledError(string(rem.Channel)).
			WithMetadata("reminderId", rem.ID))
		return
	}
	writeJSON(w, http.StatusAccepted, rem)
}

func (s *Server) handleReminderTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": reminder.Templates()})
}

func (s *Server) handlePrayerTimes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"prayerTimes": reminder.DefaultPrayerTimes()})
}
