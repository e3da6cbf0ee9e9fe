package monday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AG-g1/more-house/internal/domain"
)

func pageResponse(cursor string, items ...Item) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"boards": []any{
				map[string]any{
					"items_page": map[string]any{
						"cursor": cursor,
						"items":  items,
					},
				},
			},
		},
	}
}

func TestAllItemsPaginates(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "mi-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-01", r.Header.Get("API-Version"))

		var req struct {
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var resp map[string]any
		if req.Variables["cursor"] == nil {
			resp = pageResponse("cursor-2", Item{ID: "1", Name: "2.1"}, Item{ID: "2", Name: "2.2"})
		} else {
			assert.Equal(t, "cursor-2", req.Variables["cursor"])
			resp = pageResponse("", Item{ID: "3", Name: "3.1"})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("mi-token", server.URL)
	items, err := client.AllItems(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	require.Len(t, items, 3)
	assert.Equal(t, "3.1", items[2].Name)
}

func TestAllItemsStopsOnEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Cursor no vacío pero página vacía: corta la paginación.
		json.NewEncoder(w).Encode(pageResponse("cursor-raro"))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("mi-token", server.URL)
	items, err := client.AllItems(context.Background(), "123")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExecuteWithoutToken(t *testing.T) {
	client := NewClient("")
	_, err := client.AllItems(context.Background(), "123")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestExecuteGraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"board no existe"}]}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("mi-token", server.URL)
	_, err := client.AllItems(context.Background(), "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board no existe")
}

func TestExecuteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("mi-token", server.URL)
	_, err := client.AllItems(context.Background(), "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestBoardsInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"boards":[{"id":"9376648770","name":"MH - Unit Schedule","updated_at":"2026-08-30T10:00:00Z","items_count":120}]}}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("mi-token", server.URL)
	boards, err := client.BoardsInfo(context.Background(), []string{"9376648770"})
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "MH - Unit Schedule", boards[0].Name)
	assert.Equal(t, 120, boards[0].ItemsCount)
}
