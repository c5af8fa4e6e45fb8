package loans

type ReturnMultipleRequest struct {
	RecordIDs      []string `json:"record_ids"`
	HolderPassword string   `json:"holder_password"`
}

type ReturnOneRequest struct {
	HolderPassword string `json:"holder_password"`
}

type DeleteAllResult struct {
	Deleted int64 `json:"deleted"`
}
