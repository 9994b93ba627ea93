package public

import "github.com/sngm3741/jobboard/api/internal/interfaces/http/common"

type jobListResponse struct {
	Items      []common.ListingPayload `json:"items"`
	PageCount  int                     `json:"pageCount"`
	HasMore    bool                    `json:"hasMore"`
	LoadedMore bool                    `json:"loadedMore"`
	Stale      bool                    `json:"stale,omitempty"`
	Session    string                  `json:"session"`
}

type jobSearchResponse struct {
	Items   []common.ListingPayload `json:"items"`
	Stale   bool                    `json:"stale,omitempty"`
	Session string                  `json:"session"`
}
