package registration_test

import (
	"strings"
	"testing"

	"github.com/geocoder89/inscricoes/internal/domain/registration"
	"github.com/geocoder89/inscricoes/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validInput() map[string]any {
	return map[string]any{
		"nome":  "Ana Silva",
		"email": "ana@example.com",
		"curso": "Engenharia",
	}
}

func TestFromInput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(m map[string]any)
		wantErr   error
		wantField string
	}{
		{name: "valid"},
		{
			name:      "missing_nome",
			mutate:    func(m map[string]any) { delete(m, "nome") },
			wantErr:   validate.ErrMissingField,
			wantField: "nome",
		},
		{
			name:      "missing_email",
			mutate:    func(m map[string]any) { delete(m, "email") },
			wantErr:   validate.ErrMissingField,
			wantField: "email",
		},
		{
			name:      "missing_curso",
			mutate:    func(m map[string]any) { delete(m, "curso") },
			wantErr:   validate.ErrMissingField,
			wantField: "curso",
		},
		{
			name:      "short_nome",
			mutate:    func(m map[string]any) { m["nome"] = "A" },
			wantErr:   validate.ErrTooShort,
			wantField: "nome",
		},
		{
			name:      "long_curso",
			mutate:    func(m map[string]any) { m["curso"] = strings.Repeat("x", 121) },
			wantErr:   validate.ErrTooLong,
			wantField: "curso",
		},
		{
			name:      "email_below_min_length",
			mutate:    func(m map[string]any) { m["email"] = "a@b" },
			wantErr:   validate.ErrTooShort,
			wantField: "email",
		},
		{
			name:      "email_shape",
			mutate:    func(m map[string]any) { m["email"] = "not-an-email" },
			wantErr:   validate.ErrInvalidFormat,
			wantField: "email",
		},
		{
			name:      "email_wrong_type",
			mutate:    func(m map[string]any) { m["email"] = []any{"ana@example.com"} },
			wantErr:   validate.ErrWrongType,
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			if tt.mutate != nil {
				tt.mutate(in)
			}

			reg, err := registration.FromInput(in)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "Ana Silva", reg.Name())
				assert.Equal(t, "ana@example.com", reg.Email())
				assert.Equal(t, "Engenharia", reg.Course())
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, strings.ToLower(err.Error()), tt.wantField)
			assert.Equal(t, registration.Registration{}, reg)
		})
	}
}

func TestFromInputFailsOnFirstField(t *testing.T) {
	// every field is broken; nome is checked first
	_, err := registration.FromInput(map[string]any{
		"nome":  "A",
		"email": "bad",
		"curso": 1,
	})
	require.ErrorIs(t, err, &validate.Error{Kind: validate.KindTooShort, Field: "nome"})

	_, err = registration.FromInput(map[string]any{
		"nome":  "Ana",
		"email": "bad@x",
		"curso": 1,
	})
	require.ErrorIs(t, err, &validate.Error{Kind: validate.KindInvalidFormat, Field: "email"})
}

func TestFromInputTrimsFields(t *testing.T) {
	reg, err := registration.FromInput(map[string]any{
		"nome":  "  Ana Silva  ",
		"email": "\tana@example.com ",
		"curso": "Engenharia\n",
	})
	require.NoError(t, err)

	name, email, course := reg.StorageTuple()
	assert.Equal(t, "Ana Silva", name)
	assert.Equal(t, "ana@example.com", email)
	assert.Equal(t, "Engenharia", course)
}

func TestPublicView(t *testing.T) {
	reg, err := registration.FromInput(validInput())
	require.NoError(t, err)

	before := reg.PublicView(nil)
	assert.Nil(t, before.ID)

	id := int64(42)
	after := reg.PublicView(&id)
	require.NotNil(t, after.ID)
	assert.Equal(t, int64(42), *after.ID)

	// the view keeps its own copy of the id
	id = 7
	assert.Equal(t, int64(42), *after.ID)
}

func TestRegistrationInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,60}[A-Za-z]`).Draw(t, "name")
		course := rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,60}[A-Za-z]`).Draw(t, "course")
		email := rapid.StringMatching(`[a-z]{1,20}@[a-z]{1,20}\.[a-z]{2,5}`).Draw(t, "email")
		id := rapid.Int64Range(1, 1<<40).Draw(t, "id")

		reg, err := registration.FromInput(map[string]any{
			"nome":  name,
			"email": email,
			"curso": course,
		})
		if err != nil {
			t.Fatalf("valid input rejected: %v", err)
		}

		n, e, c := reg.StorageTuple()
		if n != name || e != email || c != course {
			t.Fatalf("storage tuple out of order: (%q, %q, %q)", n, e, c)
		}

		if reg.PublicView(nil).ID != nil {
			t.Fatalf("id present before insert")
		}

		v := reg.PublicView(&id)
		if v.ID == nil || *v.ID != id {
			t.Fatalf("id missing after insert")
		}
		if v.Name != name || v.Email != email || v.Course != course {
			t.Fatalf("public view does not match fields: %+v", v)
		}
	})
}
