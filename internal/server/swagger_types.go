package server

import "github.com/handyheartslabs/handyhearts/pkg/db/pagination"

// Response envelopes referenced by the handler annotations.

type DataResponse struct {
	Data any `json:"data"`
}

type ListResponse struct {
	Data     any                 `json:"data"`
	PageInfo pagination.PageInfo `json:"page_info"`
}
