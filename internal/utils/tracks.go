package utils

import (
	"strings"

	"pinatatracks/pkg/models"
)

const audioMimePrefix = "audio"

// IsAudio reports whether a Pinata file is playable audio.
func IsAudio(file models.File) bool {
	return strings.HasPrefix(file.MimeType, audioMimePrefix)
}

// GatewayURL formats a CID into a URL on the given IPFS gateway.
func GatewayURL(gatewayBase, cid string) string {
	return strings.TrimRight(gatewayBase, "/") + "/" + cid
}

// ArtistOf returns the "artist" key value, or "" when absent or not a string.
func ArtistOf(file models.File) string {
	artist, _ := file.KeyValues["artist"].(string)
	return artist
}

// FilesToTracks keeps audio files and maps them to tracks, preserving order.
// The result is never nil.
func FilesToTracks(files []models.File, gatewayBase string) []models.Track {
	tracks := make([]models.Track, 0, len(files))
	for _, file := range files {
		if !IsAudio(file) {
			continue
		}
		tracks = append(tracks, models.Track{
			Name:   file.Name,
			Artist: ArtistOf(file),
			URL:    GatewayURL(gatewayBase, file.CID),
		})
	}
	return tracks
}
