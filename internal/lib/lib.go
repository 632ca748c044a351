// Package lib holds supporting code that is not part of the request
// layers: background jobs on Redis/Asynq, transactional email through
// Resend and markdown rendering for blog content.
package lib
