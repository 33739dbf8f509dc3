// Package pagination implements opaque cursor paging shared by list
// endpoints and repositories.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

// Cursor identifies the last row of a page; created_at plus id gives a
// stable order even when timestamps collide.
type Cursor struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

func EncodeCursor(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodeCursor(token string) (Cursor, error) {
	var c Cursor
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Apply scopes a query to one page. It fetches pageSize+1 rows so the
// caller can detect whether more pages exist.
func Apply(page Pagination) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if page.PageToken != "" {
			if cursor, err := DecodeCursor(page.PageToken); err == nil {
				q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
			}
		}
		if page.PageSize > 0 {
			q = q.Limit(page.PageSize + 1)
		}
		return q
	}
}

// BuildCursorPageInfo derives page info from an over-fetched result set.
func BuildCursorPageInfo[T any](items []T, pageSize int, token func(T) string) *PageInfo {
	if pageSize <= 0 {
		return nil
	}
	info := &PageInfo{}
	if len(items) > pageSize {
		info.HasMore = true
		info.NextPageToken = token(items[pageSize-1])
	}
	return info
}
