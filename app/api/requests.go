package api

import (
	"encoding/json"
	"fmt"

	"github.com/thoughtforge/thoughtforge/app/database"
	"github.com/thoughtforge/thoughtforge/app/validate"
)

var basisEntryKeys = map[string]bool{
	"basis_type":  true,
	"reference":   true,
	"source_text": true,
	"theme":       true,
	"angle":       true,
	"notes":       true,
	"approved":    true,
	"source_link": true,
}

func validateBasisEntryBody(body interface{}) (*database.BasisEntryInput, error) {
	m, err := validate.Object(body)
	if err != nil {
		return nil, err
	}
	if err := validate.UnknownKeys(m, basisEntryKeys); err != nil {
		return nil, err
	}

	in := &database.BasisEntryInput{}

	if in.BasisType, err = validate.RequiredString(m, "basis_type"); err != nil {
		return nil, err
	}
	if in.Reference, err = validate.RequiredString(m, "reference"); err != nil {
		return nil, err
	}
	if in.SourceText, err = validate.RequiredString(m, "source_text"); err != nil {
		return nil, err
	}
	if in.Theme, err = validate.RequiredString(m, "theme"); err != nil {
		return nil, err
	}
	if in.Angle, _, err = validate.OptionalString(m, "angle"); err != nil {
		return nil, err
	}
	if in.Notes, _, err = validate.OptionalString(m, "notes"); err != nil {
		return nil, err
	}
	if in.SourceLink, _, err = validate.OptionalString(m, "source_link"); err != nil {
		return nil, err
	}
	if in.Approved, err = validate.OptionalBool(m, "approved"); err != nil {
		return nil, err
	}

	return in, nil
}

var jobKeys = map[string]bool{
	"type":    true,
	"payload": true,
}

func validateJobBody(body interface{}) (string, json.RawMessage, error) {
	m, err := validate.Object(body)
	if err != nil {
		return "", nil, err
	}
	if err := validate.UnknownKeys(m, jobKeys); err != nil {
		return "", nil, err
	}

	jobType, err := validate.RequiredString(m, "type")
	if err != nil {
		return "", nil, err
	}

	payloadObj, err := validate.RequiredObject(m, "payload")
	if err != nil {
		return "", nil, err
	}
	payload, err := json.Marshal(payloadObj)
	if err != nil {
		return "", nil, fmt.Errorf("Field \"payload\" must be a JSON object.")
	}

	return jobType, payload, nil
}

var claimKeys = map[string]bool{
	"worker_id": true,
}

func validateClaimBody(body interface{}) (string, error) {
	m, err := validate.Object(body)
	if err != nil {
		return "", err
	}
	if err := validate.UnknownKeys(m, claimKeys); err != nil {
		return "", err
	}

	return validate.RequiredString(m, "worker_id")
}

var completeKeys = map[string]bool{
	"result": true,
}

func validateCompleteBody(body interface{}) (json.RawMessage, error) {
	m, err := validate.Object(body)
	if err != nil {
		return nil, err
	}
	if err := validate.UnknownKeys(m, completeKeys); err != nil {
		return nil, err
	}

	resultObj, err := validate.RequiredObject(m, "result")
	if err != nil {
		return nil, err
	}
	result, err := json.Marshal(resultObj)
	if err != nil {
		return nil, fmt.Errorf("Field \"result\" must be a JSON object.")
	}

	return result, nil
}

var failKeys = map[string]bool{
	"error": true,
}

func validateFailBody(body interface{}) (string, error) {
	m, err := validate.Object(body)
	if err != nil {
		return "", err
	}
	if err := validate.UnknownKeys(m, failKeys); err != nil {
		return "", err
	}

	return validate.RequiredString(m, "error")
}

// Note: "status" is deliberately not an allowed key. New thoughts always
// start as drafts, and a client-supplied status is rejected, not ignored.
var thoughtKeys = map[string]bool{
	"basis_id": true,
	"title":    true,
	"body":     true,
	"category": true,
}

func validateThoughtBody(body interface{}) (*database.ThoughtInput, error) {
	m, err := validate.Object(body)
	if err != nil {
		return nil, err
	}
	if err := validate.UnknownKeys(m, thoughtKeys); err != nil {
		return nil, err
	}

	in := &database.ThoughtInput{}

	if in.Title, err = validate.RequiredString(m, "title"); err != nil {
		return nil, err
	}
	if in.Body, err = validate.RequiredString(m, "body"); err != nil {
		return nil, err
	}
	if in.Category, err = validate.RequiredString(m, "category"); err != nil {
		return nil, err
	}
	if in.BasisID, err = validate.OptionalUUID(m, "basis_id"); err != nil {
		return nil, err
	}

	return in, nil
}

func thoughtStatusNames() []string {
	names := make([]string, len(database.ThoughtStatuses))
	for i, status := range database.ThoughtStatuses {
		names[i] = string(status)
	}
	return names
}
