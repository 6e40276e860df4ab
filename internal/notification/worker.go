// Package notification turns queued email jobs into delivered mail.
package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
	"github.com/oksasatya/go-project-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/go-project-marketplace/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota
	Requeue         // transient send failure
	Drop            // undecodable or unrenderable; retrying cannot help
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	default:
		return "drop"
	}
}

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type Worker struct {
	Sender      Sender
	Resolver    mailtpl.GeoResolver // optional
	Logger      logrus.FieldLogger
	SendTimeout time.Duration
}

func NewWorker(sender Sender, resolver mailtpl.GeoResolver, logger logrus.FieldLogger) *Worker {
	return &Worker{Sender: sender, Resolver: resolver, Logger: logger, SendTimeout: 15 * time.Second}
}

// Handle decodes, renders and sends one job.
func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad email job payload")
		return Drop
	}
	if job.To == "" {
		w.Logger.Warn("email job without recipient")
		return Drop
	}
	helpers.EnsureRecipientAndEmail(&job)
	if w.Resolver != nil {
		helpers.LocalizeTimesIfPossible(ctx, w.Resolver, job.Data)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			w.Logger.WithError(err).WithField("template", job.Template).Warn("render failed")
			return Drop
		}
		subject, text, html = s, t, h
	}
	if subject == "" {
		subject = helpers.SubjectFor(job)
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(sendCtx, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Warn("send failed")
		return Requeue
	}
	w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return Ack
}
