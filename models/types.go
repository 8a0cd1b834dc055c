package models

import "time"

// Election status constants
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Device roles
const (
	RoleAdmin = "admin"
	RoleVoter = "voter"
)

// Device platforms
const (
	PlatformIOS     = "ios"
	PlatformMacOS   = "macos"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// Request types

type CreateElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorName string `json:"creator_name"`
}

type RegisterVoterRequest struct {
	Username string `json:"username"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

type RegisterDeviceRequest struct {
	Platform string `json:"platform"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
	AdminKey   string `json:"admin_key"`
}

type PublishElectionResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type RegisterVoterResponse struct {
	ParticipantID string `json:"participant_id"`
	VoterToken    string `json:"voter_token"`
}

type CastVoteResponse struct {
	CandidateID string `json:"candidate_id"`
	Votes       uint32 `json:"votes"`
	Message     string `json:"message"`
}

type TallyResponse struct {
	CandidateID string `json:"candidate_id"`
	Votes       uint32 `json:"votes"`
}

type WinnersResponse struct {
	Winners    []WinnerEntry `json:"winners"`
	TotalVotes uint64        `json:"total_votes"`
}

type WinnerEntry struct {
	CandidateID string `json:"candidate_id"`
	Username    string `json:"username"`
	Votes       uint32 `json:"votes"`
}

type TurnoutResponse struct {
	BallotsCast    uint64 `json:"ballots_cast"`
	Participants   int    `json:"participants"`
	BallotsDisplay string `json:"ballots_display"`
}

type CloseElectionResponse struct {
	ClosedAt time.Time     `json:"closed_at"`
	Winners  []WinnerEntry `json:"winners"`
}

type RegisterDeviceResponse struct {
	DeviceID string `json:"device_id"`
	IsNew    bool   `json:"is_new"`
}

// Domain types

type Election struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatorName string     `json:"creator_name"`
	Status      string     `json:"status"`
	ShareSlug   *string    `json:"share_slug,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Participant struct {
	ID         string    `json:"id"`
	ElectionID string    `json:"election_id"`
	Username   string    `json:"username"`
	VoterToken string    `json:"-"` // Never expose in JSON
	IPHash     *string   `json:"-"` // Never expose in JSON
	UserAgent  *string   `json:"-"` // Never expose in JSON
	CreatedAt  time.Time `json:"created_at"`
}

type ElectionWithCandidates struct {
	Election   Election      `json:"election"`
	Candidates []Participant `json:"candidates"`
}

// TallyUpdate is broadcast to live feed subscribers after each
// successful vote.
type TallyUpdate struct {
	CandidateID string        `json:"candidate_id"`
	Votes       uint32        `json:"votes"`
	TotalVotes  uint64        `json:"total_votes"`
	Winners     []WinnerEntry `json:"winners"`
}

type DeviceInfo struct {
	ID         string    `json:"id"`
	Platform   string    `json:"platform"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type DeviceElectionSummary struct {
	ElectionID  string    `json:"election_id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	ShareSlug   *string   `json:"share_slug,omitempty"`
	Role        string    `json:"role"`
	Username    *string   `json:"username,omitempty"`
	LinkedAt    time.Time `json:"linked_at"`
	BallotsCast int       `json:"ballots_cast"`
}

type GetMyElectionsResponse struct {
	Elections []DeviceElectionSummary `json:"elections"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
