// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: title, description, creator_name
  - RegisterVoterRequest: username
  - CastVoteRequest: candidate_id
  - RegisterDeviceRequest: platform

# Response Types

Types for JSON responses:

  - CreateElectionResponse: election_id, admin_key
  - PublishElectionResponse: share_slug, share_url
  - RegisterVoterResponse: participant_id, voter_token
  - CastVoteResponse: candidate_id, votes, message
  - TallyResponse, WinnersResponse, TurnoutResponse
  - CloseElectionResponse: closed_at, winners
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Election: election metadata and lifecycle state
  - Participant: registered voter (also an eligible candidate)
  - TallyUpdate: live-feed broadcast payload
  - DeviceInfo, DeviceElectionSummary: device tracking

# Constants

Status values:

	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"

Device roles:

	RoleVoter = "voter"
	RoleAdmin = "admin"

Platforms:

	PlatformIOS     = "ios"
	PlatformMacOS   = "macos"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
*/
package models
