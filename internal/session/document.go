package session

import (
	"github.com/tidwall/gjson"

	ncerr "vindinium/internal/errors"
)

// Document is the part of the server's new-game response the client
// keeps.  Board and hero state beyond identity are left to the turn
// loop.
type Document struct {
	GameID   string
	Turn     uint
	MaxTurns uint
	Finished bool
	Token    string
	ViewURL  string
	PlayURL  string
	HeroID   int
	HeroName string
}

// Decode parses a response body.  Anything other than a JSON object is
// StatusFailure.
func Decode(body []byte) (*Document, error) {
	if len(body) == 0 {
		return nil, ncerr.Errorf(ncerr.StatusFailure, "decode", "empty response body")
	}
	if !gjson.ValidBytes(body) {
		return nil, ncerr.Errorf(ncerr.StatusFailure, "decode", "response is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, ncerr.Errorf(ncerr.StatusFailure, "decode", "response is a JSON %s, want object", root.Type)
	}

	return &Document{
		GameID:   root.Get("game.id").String(),
		Turn:     uint(root.Get("game.turn").Uint()),
		MaxTurns: uint(root.Get("game.maxTurns").Uint()),
		Finished: root.Get("game.finished").Bool(),
		Token:    root.Get("token").String(),
		ViewURL:  root.Get("viewUrl").String(),
		PlayURL:  root.Get("playUrl").String(),
		HeroID:   int(root.Get("hero.id").Int()),
		HeroName: root.Get("hero.name").String(),
	}, nil
}
