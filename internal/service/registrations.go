package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/geocoder89/inscricoes/internal/domain/registration"
	"github.com/geocoder89/inscricoes/internal/validate"
)

const (
	msgCreated   = "Inscrição inserida com sucesso"
	msgMalformed = "JSON inválido ou vazio"
	msgStorage   = "Erro de base de dados"
	msgInternal  = "Erro interno"
)

// ErrMalformedInput is returned when the body is not a JSON object.
var ErrMalformedInput = errors.New("malformed input")

// Gateway is the storage the service needs. Implementations must return
// *registration.StorageError for failures reported by the store.
type Gateway interface {
	Insert(ctx context.Context, name, email, course string) (int64, error)
	SelectAll(ctx context.Context) ([]registration.Row, error)
}

// OutcomeRecorder counts create outcomes, e.g. for metrics.
type OutcomeRecorder interface {
	RecordRegistration(outcome string)
}

const (
	OutcomeCreated   = "created"
	OutcomeInvalid   = "invalid"
	OutcomeMalformed = "malformed"
	OutcomeStorage   = "storage_error"
	OutcomeInternal  = "internal_error"
)

type RegistrationService struct {
	gateway  Gateway
	log      *slog.Logger
	recorder OutcomeRecorder
}

type Option func(*RegistrationService)

func WithRecorder(r OutcomeRecorder) Option {
	return func(s *RegistrationService) { s.recorder = r }
}

func NewRegistrationService(gateway Gateway, log *slog.Logger, opts ...Option) *RegistrationService {
	if log == nil {
		log = slog.Default()
	}

	s := &RegistrationService{gateway: gateway, log: log}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RegistrationService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordRegistration(outcome)
	}
}

// Reply is a status code and JSON body ready to be written by the HTTP layer.
type Reply struct {
	Status int
	Body   any
}

type CreatedBody struct {
	Message string                  `json:"mensagem"`
	Data    registration.PublicView `json:"data"`
}

type ListBody struct {
	Total int                `json:"total"`
	Data  []registration.Row `json:"data"`
}

type ErrorBody struct {
	Error  string `json:"erro"`
	Detail string `json:"detalhe,omitempty"`
}

// Create validates raw and stores it. The returned view carries the id the
// store assigned.
func (s *RegistrationService) Create(ctx context.Context, raw []byte) (registration.PublicView, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return registration.PublicView{}, err
	}

	reg, err := registration.FromInput(fields)
	if err != nil {
		return registration.PublicView{}, err
	}

	name, email, course := reg.StorageTuple()

	id, err := s.gateway.Insert(ctx, name, email, course)
	if err != nil {
		return registration.PublicView{}, err
	}

	return reg.PublicView(&id), nil
}

// List returns every stored registration, newest first.
func (s *RegistrationService) List(ctx context.Context) ([]registration.Row, error) {
	rows, err := s.gateway.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []registration.Row{}
	}

	return rows, nil
}

func (s *RegistrationService) HandleCreate(ctx context.Context, raw []byte) Reply {
	view, err := s.Create(ctx, raw)
	if err != nil {
		reply, outcome := s.replyError(ctx, "create", err)
		s.record(outcome)
		return reply
	}

	s.record(OutcomeCreated)
	s.log.InfoContext(ctx, "registration created", "id", *view.ID)

	return Reply{
		Status: http.StatusCreated,
		Body:   CreatedBody{Message: msgCreated, Data: view},
	}
}

func (s *RegistrationService) HandleList(ctx context.Context) Reply {
	rows, err := s.List(ctx)
	if err != nil {
		reply, _ := s.replyError(ctx, "list", err)
		return reply
	}

	return Reply{
		Status: http.StatusOK,
		Body:   ListBody{Total: len(rows), Data: rows},
	}
}

// replyError maps err to the reply shown to the caller. Store diagnostics are
// exposed in detalhe; anything unrecognised gets a generic message.
func (s *RegistrationService) replyError(ctx context.Context, op string, err error) (Reply, string) {
	var storageErr *registration.StorageError

	switch {
	case errors.Is(err, ErrMalformedInput):
		s.log.DebugContext(ctx, "malformed body", "op", op)
		return Reply{Status: http.StatusBadRequest, Body: ErrorBody{Error: msgMalformed}}, OutcomeMalformed

	case errors.Is(err, validate.ErrValidation):
		s.log.DebugContext(ctx, "validation failed", "op", op, "err", err)
		return Reply{Status: http.StatusBadRequest, Body: ErrorBody{Error: err.Error()}}, OutcomeInvalid

	case errors.As(err, &storageErr):
		s.log.ErrorContext(ctx, "storage failure", "op", op, "store_op", storageErr.Op, "err", err)
		return Reply{Status: http.StatusInternalServerError, Body: ErrorBody{Error: msgStorage, Detail: storageErr.Error()}}, OutcomeStorage

	default:
		s.log.ErrorContext(ctx, "unexpected failure", "op", op, "err", err)
		return Reply{Status: http.StatusInternalServerError, Body: ErrorBody{Error: msgInternal}}, OutcomeInternal
	}
}

func decodeObject(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrMalformedInput
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, ErrMalformedInput
	}

	// trailing data after the first value
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrMalformedInput
	}

	fields, ok := v.(map[string]any)
	if !ok {
		return nil, ErrMalformedInput
	}

	return fields, nil
}
