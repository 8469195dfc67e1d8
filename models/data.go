package models

import "encoding/json"

/*
	Envelope shared by every endpoint of the console backend. Writes answer
	with the bare result; reads wrap their payload in Data. The request id
	(rid) is assigned by the server and echoed in logs on both sides.
*/

type BaseResult struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	RID     string `json:"rid"`
}

type Envelope struct {
	BaseResult
	Data json.RawMessage `json:"data,omitempty"`
}

// HasData reports whether the server sent a non-null data member.
func (e *Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

/*
	Paging. Every list endpoint takes page/size and answers with a page of
	records plus the total number of matches.
*/

type Page struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

type List[T any] struct {
	List  []T `json:"list"`
	Total int `json:"total"`
}

// IDPayload is the body of every delete-by-id call.
type IDPayload struct {
	ID int64 `json:"id"`
}
