// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"firstpast/models"
)

func TestRegisterDevice(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewDeviceHandler(conn, cfg)

	deviceUUID := uuid.NewString()

	register := func(t *testing.T, headerUUID, platform string) *httptest.ResponseRecorder {
		t.Helper()
		body, _ := json.Marshal(models.RegisterDeviceRequest{Platform: platform})
		req := httptest.NewRequest("POST", "/devices/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if headerUUID != "" {
			req.Header.Set("X-Device-UUID", headerUUID)
		}
		w := httptest.NewRecorder()
		handler.Register(w, req)
		return w
	}

	t.Run("new device", func(t *testing.T) {
		w := register(t, deviceUUID, models.PlatformIOS)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.RegisterDeviceResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.DeviceID == "" {
			t.Error("Expected non-empty device_id")
		}
		if !resp.IsNew {
			t.Error("Expected is_new to be true")
		}
	})

	t.Run("existing device", func(t *testing.T) {
		w := register(t, deviceUUID, models.PlatformIOS)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.RegisterDeviceResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.IsNew {
			t.Error("Expected is_new to be false for re-registration")
		}
	})

	t.Run("missing UUID header", func(t *testing.T) {
		w := register(t, "", models.PlatformIOS)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("malformed UUID header", func(t *testing.T) {
		w := register(t, "not-a-uuid", models.PlatformIOS)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("invalid platform", func(t *testing.T) {
		w := register(t, uuid.NewString(), "blackberry")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestGetMe(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewDeviceHandler(conn, cfg)

	deviceUUID := uuid.NewString()

	// Register first
	body, _ := json.Marshal(models.RegisterDeviceRequest{Platform: models.PlatformWeb})
	req := httptest.NewRequest("POST", "/devices/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-UUID", deviceUUID)
	w := httptest.NewRecorder()
	handler.Register(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to register device: %d", w.Code)
	}

	t.Run("known device", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/devices/me", nil)
		req.Header.Set("X-Device-UUID", deviceUUID)
		w := httptest.NewRecorder()

		handler.GetMe(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.DeviceInfo
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Platform != models.PlatformWeb {
			t.Errorf("Expected platform 'web', got '%s'", resp.Platform)
		}
	})

	t.Run("unknown device", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/devices/me", nil)
		req.Header.Set("X-Device-UUID", uuid.NewString())
		w := httptest.NewRecorder()

		handler.GetMe(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestGetMyElections(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewDeviceHandler(conn, cfg)
	electionHandler := NewElectionHandler(conn, cfg)
	voting := NewVotingHandler(conn, cfg, newTestHub())

	deviceUUID := uuid.NewString()

	// Create an election with this device as admin
	body, _ := json.Marshal(models.CreateElectionRequest{
		Title:       "Device Election",
		CreatorName: "Alice",
	})
	req := httptest.NewRequest("POST", "/elections", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-UUID", deviceUUID)
	w := httptest.NewRecorder()
	electionHandler.CreateElection(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create election: %d. Body: %s", w.Code, w.Body.String())
	}

	// Register as a voter in a second election from the same device
	electionID, _, shareSlug := createTestElection(t, conn, cfg, models.StatusOpen)
	regBody, _ := json.Marshal(models.RegisterVoterRequest{Username: "alice"})
	req = httptest.NewRequest("POST", "/elections/"+shareSlug+"/register", bytes.NewReader(regBody))
	req.SetPathValue("slug", shareSlug)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-UUID", deviceUUID)
	w = httptest.NewRecorder()
	voting.RegisterVoter(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to register voter: %d. Body: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/devices/my-elections", nil)
	req.Header.Set("X-Device-UUID", deviceUUID)
	w = httptest.NewRecorder()

	handler.GetMyElections(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.GetMyElectionsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Elections) != 2 {
		t.Fatalf("Expected 2 linked elections, got %d", len(resp.Elections))
	}

	roles := map[string]string{}
	for _, e := range resp.Elections {
		roles[e.ElectionID] = e.Role
	}
	if roles[electionID] != models.RoleVoter {
		t.Errorf("Expected voter role for election %s, got '%s'", electionID, roles[electionID])
	}

	// The voter registration should surface the username
	for _, e := range resp.Elections {
		if e.ElectionID == electionID {
			if e.Username == nil || *e.Username != "alice" {
				t.Error("Expected username 'alice' on voter-linked election")
			}
		}
	}
}
