package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pinatatracks/pkg/models"
)

const gateway = "https://gateway.pinata.cloud/ipfs"

func TestFilesToTracksKeepsOnlyAudio(t *testing.T) {
	files := []models.File{
		{Name: "one.mp3", CID: "cid1", MimeType: "audio/mpeg", KeyValues: map[string]interface{}{"artist": "Ana"}},
		{Name: "cover.jpg", CID: "cid2", MimeType: "image/jpeg"},
		{Name: "two.ogg", CID: "cid3", MimeType: "audio/ogg"},
		{Name: "no-mime", CID: "cid4"},
		{Name: "video.mp4", CID: "cid5", MimeType: "video/mp4", KeyValues: map[string]interface{}{"artist": "Bo"}},
		{Name: "three.flac", CID: "cid6", MimeType: "audiox", KeyValues: map[string]interface{}{"artist": 42}},
	}

	tracks := FilesToTracks(files, gateway)

	assert.Equal(t, []models.Track{
		{Name: "one.mp3", Artist: "Ana", URL: "https://gateway.pinata.cloud/ipfs/cid1"},
		{Name: "two.ogg", Artist: "", URL: "https://gateway.pinata.cloud/ipfs/cid3"},
		{Name: "three.flac", Artist: "", URL: "https://gateway.pinata.cloud/ipfs/cid6"},
	}, tracks)
}

func TestFilesToTracksNeverNil(t *testing.T) {
	assert.NotNil(t, FilesToTracks(nil, gateway))
	assert.Empty(t, FilesToTracks([]models.File{{Name: "x", MimeType: "text/plain"}}, gateway))
}

func TestIsAudioIsCaseSensitivePrefix(t *testing.T) {
	assert.True(t, IsAudio(models.File{MimeType: "audio/wav"}))
	assert.False(t, IsAudio(models.File{MimeType: "Audio/wav"}))
	assert.False(t, IsAudio(models.File{MimeType: "application/audio"}))
	assert.False(t, IsAudio(models.File{}))
}

func TestGatewayURLTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "https://gw.example/ipfs/abc", GatewayURL("https://gw.example/ipfs/", "abc"))
	assert.Equal(t, "https://gw.example/ipfs/abc", GatewayURL("https://gw.example/ipfs", "abc"))
}

func TestArtistOf(t *testing.T) {
	assert.Equal(t, "", ArtistOf(models.File{}))
	assert.Equal(t, "", ArtistOf(models.File{KeyValues: map[string]interface{}{"album": "x"}}))
	assert.Equal(t, "Cleo", ArtistOf(models.File{KeyValues: map[string]interface{}{"artist": "Cleo"}}))
}
