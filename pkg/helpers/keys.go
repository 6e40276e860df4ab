package helpers

// Redis keys

// KeySession is the hash holding the active session of a user.
func KeySession(uid string) string {
	return "user:session:" + uid
}

// KeyPaymentIntent caches the intent issued to a buyer for a project.
func KeyPaymentIntent(buyerID, projectID string) string {
	return "purchase:intent:" + buyerID + ":" + projectID
}
