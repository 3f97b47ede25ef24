package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/handler"
	"github.com/BorgesHen/MochilaOk/internal/service"
)

func TestListItems_IncludesCallerStateAndClaimant(t *testing.T) {
	claimant := uuid.New()
	qty := 2.0
	h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
		list: func(context.Context, uuid.UUID, uuid.UUID) ([]domain.ItemView, error) {
			return []domain.ItemView{
				{
					Item:         domain.Item{ID: uuid.New(), Title: "Chips", Qty: &qty, CategoryMode: domain.ModeClaimable},
					CategoryName: "Snacks",
					Mine:         domain.DefaultItemState,
					ClaimedBy:    &claimant,
				},
				{
					Item:         domain.Item{ID: uuid.New(), Title: "Passport", CategoryMode: domain.ModePerUser},
					CategoryName: "Docs",
					Mine:         domain.ItemState{Status: domain.ItemDone},
				},
			}, nil
		},
	}}, uuid.New())

	rec := do(h, http.MethodGet, "/destinations/"+uuid.NewString()+"/items", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 2)

	assert.Equal(t, "Chips", body[0]["title"])
	assert.Equal(t, "Snacks", body[0]["category_name"])
	assert.Equal(t, "CLAIMABLE", body[0]["category_mode"])
	assert.Equal(t, "PENDING", body[0]["my_status"])
	assert.Equal(t, false, body[0]["my_claimed"])
	assert.Equal(t, claimant.String(), body[0]["claimed_by"])
	assert.InDelta(t, 2.0, body[0]["qty"], 0)

	assert.Equal(t, "DONE", body[1]["my_status"])
	assert.Nil(t, body[1]["claimed_by"])
	assert.NotContains(t, body[1], "qty")
}

func TestCreateItem_Returns201(t *testing.T) {
	user, destID, catID := uuid.New(), uuid.New(), uuid.New()
	h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
		create: func(_ context.Context, u, d uuid.UUID, in service.NewItem) (domain.Item, error) {
			assert.Equal(t, user, u)
			assert.Equal(t, destID, d)
			assert.Equal(t, catID, in.CategoryID)
			assert.Equal(t, "bags", in.Unit)
			require.NotNil(t, in.Qty)
			return domain.Item{ID: uuid.New(), DestinationID: d, CategoryID: in.CategoryID, Title: in.Title, Qty: in.Qty, Unit: in.Unit, CreatedBy: u}, nil
		},
	}}, user)

	rec := do(h, http.MethodPost, "/destinations/"+destID.String()+"/items", jsonBody(t, map[string]any{
		"category_id": catID, "title": "Chips", "qty": 3, "unit": "bags",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, user.String(), body["created_by"])
	assert.NotContains(t, body, "notes")
}

func TestCreateItem_Validation(t *testing.T) {
	cases := map[string]struct {
		body    map[string]any
		message string
	}{
		"missing category": {map[string]any{"title": "Chips"}, "category_id is required"},
		"negative qty":     {map[string]any{"category_id": uuid.New(), "title": "Chips", "qty": -1}, "qty must be at least 0"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHTTPHandler(handler.Services{Items: &mockItemServicer{}}, uuid.New())

			rec := do(h, http.MethodPost, "/destinations/"+uuid.NewString()+"/items", jsonBody(t, tc.body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, decodeError(t, rec).Error.Message)
		})
	}
}

func TestCreateItem_ForeignCategory_Returns400(t *testing.T) {
	h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
		create: func(context.Context, uuid.UUID, uuid.UUID, service.NewItem) (domain.Item, error) {
			return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w: invalid category for this destination", domain.ErrValidation)
		},
	}}, uuid.New())

	rec := do(h, http.MethodPost, "/destinations/"+uuid.NewString()+"/items", jsonBody(t, map[string]any{
		"category_id": uuid.New(), "title": "Chips",
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid category for this destination", decodeError(t, rec).Error.Message)
}

func TestSetItemClaim(t *testing.T) {
	itemID := uuid.New()

	t.Run("claim", func(t *testing.T) {
		h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
			setClaimed: func(_ context.Context, _, id uuid.UUID, claimed bool) error {
				assert.Equal(t, itemID, id)
				assert.True(t, claimed)
				return nil
			},
		}}, uuid.New())

		rec := do(h, http.MethodPatch, "/items/"+itemID.String()+"/claim", jsonBody(t, map[string]any{"claimed": true}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"claimed":true}`, rec.Body.String())
	})

	t.Run("release", func(t *testing.T) {
		h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
			setClaimed: func(context.Context, uuid.UUID, uuid.UUID, bool) error { return nil },
		}}, uuid.New())

		rec := do(h, http.MethodPatch, "/items/"+itemID.String()+"/claim", jsonBody(t, map[string]any{"claimed": false}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"claimed":false}`, rec.Body.String())
	})

	t.Run("missing flag", func(t *testing.T) {
		h := newHTTPHandler(handler.Services{Items: &mockItemServicer{}}, uuid.New())

		rec := do(h, http.MethodPatch, "/items/"+itemID.String()+"/claim", jsonBody(t, map[string]any{}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "claimed is required", decodeError(t, rec).Error.Message)
	})

	t.Run("held by someone else", func(t *testing.T) {
		h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
			setClaimed: func(context.Context, uuid.UUID, uuid.UUID, bool) error {
				return fmt.Errorf("%w: item already claimed by someone else", domain.ErrConflict)
			},
		}}, uuid.New())

		rec := do(h, http.MethodPatch, "/items/"+itemID.String()+"/claim", jsonBody(t, map[string]any{"claimed": true}))

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "item already claimed by someone else", decodeError(t, rec).Error.Message)
	})

	t.Run("per-user category", func(t *testing.T) {
		h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
			setClaimed: func(context.Context, uuid.UUID, uuid.UUID, bool) error {
				return fmt.Errorf("%w: item is not claimable (category is not CLAIMABLE)", domain.ErrInvalidOperation)
			},
		}}, uuid.New())

		rec := do(h, http.MethodPatch, "/items/"+itemID.String()+"/claim", jsonBody(t, map[string]any{"claimed": true}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_operation", decodeError(t, rec).Error.Code)
	})
}

func TestSetItemStatus(t *testing.T) {
	itemID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
			setStatus: func(_ context.Context, _, _ uuid.UUID, status string) (domain.ItemStatus, error) {
				return domain.ItemStatus(status), nil
			},
		}}, uuid.New())

		rec := do(h, http.MethodPatch, "/items/"+itemID.String()+"/status", jsonBody(t, map[string]any{"status": "DONE"}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"status":"DONE"}`, rec.Body.String())
	})

	t.Run("not the claimant", func(t *testing.T) {
		h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
			setStatus: func(context.Context, uuid.UUID, uuid.UUID, string) (domain.ItemStatus, error) {
				return "", fmt.Errorf("%w: you must claim this item before changing its status", domain.ErrForbidden)
			},
		}}, uuid.New())

		rec := do(h, http.MethodPatch, "/items/"+itemID.String()+"/status", jsonBody(t, map[string]any{"status": "DONE"}))

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "you must claim this item before changing its status", decodeError(t, rec).Error.Message)
	})

	t.Run("unknown item", func(t *testing.T) {
		h := newHTTPHandler(handler.Services{Items: &mockItemServicer{
			setStatus: func(context.Context, uuid.UUID, uuid.UUID, string) (domain.ItemStatus, error) {
				return "", fmt.Errorf("%w: item not found", domain.ErrNotFound)
			},
		}}, uuid.New())

		rec := do(h, http.MethodPatch, "/items/"+itemID.String()+"/status", jsonBody(t, map[string]any{"status": "DONE"}))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListTripTypes(t *testing.T) {
	h := newHTTPHandler(handler.Services{TripTypes: &mockTripTypeServicer{
		list: func(context.Context) ([]domain.TripType, error) {
			return []domain.TripType{{ID: uuid.New(), Name: "Passeio", Slug: "passeio"}}, nil
		},
	}}, uuid.New())

	rec := do(h, http.MethodGet, "/trip-types", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "passeio", body[0]["slug"])
}
