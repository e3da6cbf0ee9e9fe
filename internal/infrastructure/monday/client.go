// Package monday implementa el cliente GraphQL del CRM de tableros (API v2).
// Referencia: https://developer.monday.com/api-reference/docs
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AG-g1/more-house/internal/domain"
)

const (
	apiURL     = "https://api.monday.com/v2"
	apiVersion = "2024-01"

	// Tamaño de página de items_page; el API admite hasta 500 pero 100 es lo
	// que el tablero real soporta sin timeouts.
	pageLimit = 100
)

// Client cliente del API GraphQL de Monday. Usa net/http de la librería
// estándar; no requiere SDK.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. Si token está vacío, las llamadas devuelven
// domain.ErrNotConfigured en lugar de panic.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL variante para tests (httptest.Server).
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

// ColumnValue valor de una columna de un item: id opaco de columna, texto de
// presentación y valor estructurado crudo (string JSON, puede estar vacío).
type ColumnValue struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Item registro de un tablero.
type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
	ColumnValues []ColumnValue `json:"column_values"`
}

// BoardInfo metadatos de un tablero (para el endpoint de estado).
type BoardInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UpdatedAt  string `json:"updated_at"`
	ItemsCount int    `json:"items_count"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// execute lanza una consulta GraphQL y deserializa data en out.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	if c.token == "" {
		return fmt.Errorf("monday: MONDAY_API_TOKEN: %w", domain.ErrNotConfigured)
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("monday: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("monday: crear request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("monday: llamada HTTP: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("monday: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("monday: API respondió %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("monday: respuesta malformada: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("monday: error GraphQL: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("monday: deserializar data: %w", err)
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// ── Consultas ─────────────────────────────────────────────────────────────────

const itemsPageQuery = `
query ($boardId: ID!, $limit: Int!, $cursor: String) {
    boards (ids: [$boardId]) {
        items_page (limit: $limit, cursor: $cursor) {
            cursor
            items {
                id
                name
                created_at
                updated_at
                column_values {
                    id
                    text
                    value
                }
            }
        }
    }
}`

// ItemsPage devuelve una página de items del tablero y el cursor de la siguiente
// (vacío si no hay más).
func (c *Client) ItemsPage(ctx context.Context, boardID string, limit int, cursor string) ([]Item, string, error) {
	variables := map[string]any{
		"boardId": boardID,
		"limit":   limit,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var data struct {
		Boards []struct {
			ItemsPage struct {
				Cursor string `json:"cursor"`
				Items  []Item `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	}
	if err := c.execute(ctx, itemsPageQuery, variables, &data); err != nil {
		return nil, "", err
	}
	if len(data.Boards) == 0 {
		return nil, "", nil
	}
	page := data.Boards[0].ItemsPage
	return page.Items, page.Cursor, nil
}

// AllItems recorre todas las páginas de un tablero. Un fallo a mitad de la
// paginación aborta la lectura completa: no hay reintentos ni recuperación
// parcial.
func (c *Client) AllItems(ctx context.Context, boardID string) ([]Item, error) {
	var all []Item
	cursor := ""
	for {
		items, next, err := c.ItemsPage(ctx, boardID, pageLimit, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next == "" || len(items) == 0 {
			break
		}
		cursor = next
	}
	return all, nil
}

const boardsInfoQuery = `
query ($boardIds: [ID!]) {
    boards (ids: $boardIds) {
        id
        name
        updated_at
        items_count
    }
}`

// BoardsInfo metadatos de los tableros indicados (nombre, última actualización,
// número de items).
func (c *Client) BoardsInfo(ctx context.Context, boardIDs []string) ([]BoardInfo, error) {
	var data struct {
		Boards []BoardInfo `json:"boards"`
	}
	err := c.execute(ctx, boardsInfoQuery, map[string]any{"boardIds": boardIDs}, &data)
	if err != nil {
		return nil, err
	}
	return data.Boards, nil
}
