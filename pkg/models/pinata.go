package models

// File is a single entry of Pinata's public files listing. Only the fields
// the track mapping reads are decoded, so extra or oddly typed fields do not
// fail the listing.
type File struct {
	Name      string                 `json:"name"`
	CID       string                 `json:"cid"`
	MimeType  string                 `json:"mime_type"`
	KeyValues map[string]interface{} `json:"keyvalues"`
}

type ListFilesResponse struct {
	Data struct {
		Files []File `json:"files"`
	} `json:"data"`
}

// Track is the shape the media player consumes.
type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}
