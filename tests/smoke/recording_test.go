//go:build smoke

package smoke

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func call(t *testing.T, client *http.Client, method, url, body string, want int) []byte {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build %s %s: %v", method, url, err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		t.Fatalf("%s %s: status %d, want %d: %s", method, url, resp.StatusCode, want, data)
	}
	return data
}

func TestRecordingFlowSmoke(t *testing.T) {
	srv := startServer(t)
	client := &http.Client{Timeout: 5 * time.Second}

	sheet := `[
		{"no":1,"group":"U14","team":"Lions","number":"1","position":"GK","gkId":1,"fullName":"Ada Keeper"},
		{"no":2,"group":"U14","team":"Lions","number":"7","fullName":"Ben Striker"},
		{"no":1,"group":"U14","team":"Bears","number":"12","position":"GK","gkId":1,"fullName":"Cleo Keeper"},
		{"no":2,"group":"U14","team":"Bears","number":"5","fullName":"Dan Wing"}
	]`
	call(t, client, http.MethodPost, srv.url("/api/v1/players"), sheet, http.StatusCreated)
	call(t, client, http.MethodPost, srv.url("/api/v1/games"),
		`{"gameNumber":1,"group":"U14","gameType":"Pool","team1":"Lions","team2":"Bears"}`, http.StatusCreated)

	call(t, client, http.MethodPost, srv.url("/api/v1/games/1/clock/start?kind=regular"), "", http.StatusOK)
	call(t, client, http.MethodPost, srv.url("/api/v1/games/1/entry/player"), `{"side":"A","player":"7"}`, http.StatusOK)
	call(t, client, http.MethodPost, srv.url("/api/v1/games/1/entry/action"), `{"action":"F"}`, http.StatusOK)
	data := call(t, client, http.MethodPost, srv.url("/api/v1/games/1/entry/resolve"), `{"outcome":"A"}`, http.StatusOK)

	var resolved struct {
		View struct {
			Session struct {
				ScoreA int `json:"scoreA"`
			} `json:"session"`
		} `json:"view"`
	}
	if err := json.Unmarshal(data, &resolved); err != nil {
		t.Fatalf("decode resolve response: %v", err)
	}
	if resolved.View.Session.ScoreA != 1 {
		t.Fatalf("scoreA = %d, want 1", resolved.View.Session.ScoreA)
	}

	data = call(t, client, http.MethodGet, srv.url("/api/v1/scoreboard/U14"), "", http.StatusOK)
	var board struct {
		Rows []struct {
			Jersey string `json:"jersey"`
			Goals  int    `json:"goals"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(data, &board); err != nil {
		t.Fatalf("decode scoreboard: %v", err)
	}
	if len(board.Rows) == 0 || board.Rows[0].Jersey != "7" || board.Rows[0].Goals != 1 {
		t.Fatalf("scoreboard leader = %+v, want #7 with 1 goal", board.Rows)
	}

	page := call(t, client, http.MethodGet, srv.url("/games/1/record"), "", http.StatusOK)
	if !strings.Contains(string(page), `id="recorder"`) {
		t.Fatalf("record page missing recorder panel")
	}
}
