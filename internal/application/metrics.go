package application

import "expvar"

// Published on /api/debug/vars.
var (
	projectsCreated       = expvar.NewInt("projects_created")
	projectsDeleted       = expvar.NewInt("projects_deleted")
	paymentIntentsCreated = expvar.NewInt("payment_intents_created")
	uploadsCompleted      = expvar.NewInt("uploads_completed")
)
