// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package live streams tally updates to websocket subscribers.

A single Hub is shared by all handlers. The voting handler broadcasts a
models.TallyUpdate after every successful vote; the live handler upgrades
GET /elections/{slug}/live and subscribes the connection:

	client := live.NewClient(conn)
	hub.Subscribe(electionID, client)
	client.Run(func() { hub.Unsubscribe(electionID, client) })

The feed is one-way. Subscribers that fall behind drop updates instead of
blocking the vote path; every update carries complete current totals, so
a dropped frame is recovered by the next one.
*/
package live
