package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fleetline/dispatch-backend/internal/cascade"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/fleetline/dispatch-backend/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverResponseAccept(t *testing.T) {
	jobID := uuid.New()
	svc := &stubCascadeService{
		responseResult: &cascade.ResponseResult{
			Reply:   enums.DriverReplyAccept,
			JobID:   jobID,
			AgentID: uuid.New(),
			OfferID: uuid.New(),
		},
	}

	rec := routedRequest(http.MethodPost, "/api/v1/webhooks/driver-response",
		`{"phone":"+15550001111","text":"YES"}`, func(r chi.Router) {
			r.Post("/api/v1/webhooks/driver-response", DriverResponse(svc, nil))
		})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "+15550001111", svc.lastInput.Phone)
	assert.Equal(t, "YES", svc.lastInput.Text)
	assert.Nil(t, svc.lastInput.JobID)

	var envelope types.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data := envelope.Data.(map[string]any)
	assert.Equal(t, string(enums.DriverReplyAccept), data["reply"])
	assert.Equal(t, jobID.String(), data["job_id"])
}

func TestDriverResponseForwardsJobScope(t *testing.T) {
	jobID := uuid.New()
	svc := &stubCascadeService{
		responseResult: &cascade.ResponseResult{Reply: enums.DriverReplyDecline, JobID: jobID},
	}

	rec := routedRequest(http.MethodPost, "/api/v1/webhooks/driver-response",
		`{"phone":"+15550001111","text":"NO","job_id":"`+jobID.String()+`"}`, func(r chi.Router) {
			r.Post("/api/v1/webhooks/driver-response", DriverResponse(svc, nil))
		})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastInput.JobID)
	assert.Equal(t, jobID, *svc.lastInput.JobID)
}

func TestDriverResponseRequiresPhoneAndText(t *testing.T) {
	svc := &stubCascadeService{}

	rec := routedRequest(http.MethodPost, "/api/v1/webhooks/driver-response",
		`{"text":"YES"}`, func(r chi.Router) {
			r.Post("/api/v1/webhooks/driver-response", DriverResponse(svc, nil))
		})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(pkgerrors.CodeValidation), envelope.Error.Code)
}

func TestDriverResponseUnrecognizedTextSurfacesExpected(t *testing.T) {
	svc := &stubCascadeService{
		responseErr: pkgerrors.New(pkgerrors.CodeUnrecognized, "unrecognized response").
			WithDetails(map[string]any{"expected": enums.ExpectedDriverReplies}),
	}

	rec := routedRequest(http.MethodPost, "/api/v1/webhooks/driver-response",
		`{"phone":"+15550001111","text":"maybe"}`, func(r chi.Router) {
			r.Post("/api/v1/webhooks/driver-response", DriverResponse(svc, nil))
		})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(pkgerrors.CodeUnrecognized), envelope.Error.Code)
	details := envelope.Error.Details.(map[string]any)
	assert.Contains(t, details, "expected")
}
