package controllers

import (
	"html/template"
	"net/http"
	"strings"

	internaljobs "github.com/fleetline/dispatch-backend/internal/jobs"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/fleetline/dispatch-backend/pkg/logger"
)

// The approve link lands in a coordinator's email client, so this route
// answers with a minimal HTML page instead of the JSON envelope.
var approveTemplate = template.Must(template.New("approve").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Job approval</title></head>
<body>
<h1>Job {{.ExternalRef}} approved</h1>
<p>Status: {{.Status}}</p>
{{if .Route}}<p>Route: {{.Route}}</p>{{end}}
<p>Offers to driver agents will start shortly.</p>
</body>
</html>
`))

var approveErrorTemplate = template.Must(template.New("approve_error").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Job approval</title></head>
<body>
<h1>Approval link invalid</h1>
<p>{{.Message}}</p>
</body>
</html>
`))

type approvePage struct {
	ExternalRef string
	Status      string
	Route       string
}

// ApproveJob flips the job to approved from the emailed link.
func ApproveJob(svc internaljobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			writeApproveError(w, http.StatusBadRequest, "The link is missing its approval token.")
			return
		}

		view, err := svc.Approve(r.Context(), token)
		if err != nil {
			typed := pkgerrors.As(err)
			if typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				writeApproveError(w, http.StatusNotFound, "This approval link does not match any job.")
				return
			}
			if logg != nil {
				logg.Error(r.Context(), "approve job failed", err)
			}
			writeApproveError(w, http.StatusInternalServerError, "Something went wrong. Try the link again in a moment.")
			return
		}

		page := approvePage{
			ExternalRef: view.ExternalRef,
			Status:      string(view.Status),
		}
		if view.Origin != nil && view.Destination != nil {
			page.Route = *view.Origin + " to " + *view.Destination
		}
		w.WriteHeader(http.StatusOK)
		_ = approveTemplate.Execute(w, page)
	}
}

func writeApproveError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_ = approveErrorTemplate.Execute(w, map[string]string{"Message": message})
}
