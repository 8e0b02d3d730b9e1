// Package form models the add-washroom submission as a small state
// machine. Field rules live here so the interactive flow and the API
// handler reject the same payloads for the same reasons.
package form

import (
	"context"
	"strings"

	"flushfinder-api/apperr"
	"flushfinder-api/model"
)

// State of a submission. A submission starts pristine, becomes editing
// on the first change, and only reaches submitting when every rule
// holds.
type State string

const (
	StatePristine   State = "pristine"
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateFailed     State = "failed"
)

// Field error keys.
const (
	FieldName    = "name"
	FieldAddress = "address"
	FieldImages  = "images"
	FieldRating  = "rating"
)

// Validate checks a payload against the submission rules and returns the
// field-scoped failures, or nil when all rules hold:
//
//   - name must be non-empty after trimming
//   - the address must come from a places selection (place with both a
//     provider ID and coordinates); free-typed text is invalid even when
//     non-empty
//   - at least one photo must be attached
//   - rating must be 1..5, zero meaning unset
func Validate(p model.CreateWashroomPayload) *apperr.ValidationError {
	fields := map[string]string{}

	if strings.TrimSpace(p.Name) == "" {
		fields[FieldName] = "name is required"
	}
	if p.Address == "" || p.Place == nil || p.Place.PlaceID == "" {
		fields[FieldAddress] = "address must be selected from the suggestions"
	}
	if len(p.Images) == 0 {
		fields[FieldImages] = "at least one photo is required"
	}
	if p.Rating < 1 || p.Rating > 5 {
		fields[FieldRating] = "rating must be between 1 and 5"
	}

	if len(fields) == 0 {
		return nil
	}
	return &apperr.ValidationError{Fields: fields}
}

// Submission tracks one add-washroom form. Not safe for concurrent use;
// a submission belongs to a single interactive session.
type Submission struct {
	payload model.CreateWashroomPayload

	state  State
	armed  bool // first submit attempt arms continuous re-validation
	errors map[string]string
}

// New returns a pristine submission.
func New() *Submission {
	return &Submission{state: StatePristine, errors: map[string]string{}}
}

// State returns the current machine state.
func (s *Submission) State() State { return s.state }

// Errors returns a copy of the current field errors.
func (s *Submission) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// FieldError returns the error for one field, empty when the field is
// currently valid.
func (s *Submission) FieldError(field string) string { return s.errors[field] }

// Payload returns the form contents as a create payload.
func (s *Submission) Payload() model.CreateWashroomPayload { return s.payload }

func (s *Submission) edited() {
	if s.state == StatePristine || s.state == StateSubmitted || s.state == StateFailed {
		s.state = StateEditing
	}
	if s.armed {
		s.revalidate()
	}
}

func (s *Submission) revalidate() {
	s.state = StateValidating
	if ve := Validate(s.payload); ve != nil {
		s.errors = ve.Fields
	} else {
		s.errors = map[string]string{}
	}
	s.state = StateEditing
}

// SetName updates the name field.
func (s *Submission) SetName(name string) {
	s.payload.Name = name
	s.edited()
}

// SetAddress records free-typed address text. Typing discards any prior
// places selection, so the address becomes invalid until re-selected.
func (s *Submission) SetAddress(text string) {
	s.payload.Address = text
	s.payload.Place = nil
	s.edited()
}

// SelectPlace records a places-autocomplete selection, which is the only
// way the address rule can be satisfied.
func (s *Submission) SelectPlace(p model.Place) {
	s.payload.Address = p.FormattedAddress
	s.payload.Place = &p
	s.edited()
}

// SetRating updates the star rating.
func (s *Submission) SetRating(rating int) {
	s.payload.Rating = rating
	s.edited()
}

// SetDescription updates the free-text description.
func (s *Submission) SetDescription(text string) {
	s.payload.Description = text
	s.edited()
}

// ToggleAmenity adds the tag if absent, removes it if present.
func (s *Submission) ToggleAmenity(tag string) {
	for i, a := range s.payload.Amenities {
		if a == tag {
			s.payload.Amenities = append(s.payload.Amenities[:i], s.payload.Amenities[i+1:]...)
			s.edited()
			return
		}
	}
	s.payload.Amenities = append(s.payload.Amenities, tag)
	s.edited()
}

// AddImage attaches a photo.
func (s *Submission) AddImage(img model.ImagePayload) {
	s.payload.Images = append(s.payload.Images, img)
	s.edited()
}

// RemoveImage detaches the photo at index i; out-of-range is a no-op.
func (s *Submission) RemoveImage(i int) {
	if i < 0 || i >= len(s.payload.Images) {
		return
	}
	s.payload.Images = append(s.payload.Images[:i], s.payload.Images[i+1:]...)
	s.edited()
}

// Submit validates and, when every rule holds, runs send with the
// payload. A failing rule rejects the submission locally: send is never
// called, the machine returns to editing with field errors set, and the
// returned error is the ValidationError. A send failure moves the
// machine to failed; success moves it to submitted.
func (s *Submission) Submit(ctx context.Context, send func(ctx context.Context, p model.CreateWashroomPayload) error) error {
	s.armed = true
	s.state = StateValidating
	if ve := Validate(s.payload); ve != nil {
		s.errors = ve.Fields
		s.state = StateEditing
		return ve
	}
	s.errors = map[string]string{}

	s.state = StateSubmitting
	if err := send(ctx, s.payload); err != nil {
		s.state = StateFailed
		return err
	}
	s.state = StateSubmitted
	return nil
}
