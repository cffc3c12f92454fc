// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Belov

package store

const (
	upsertAccount = `
		INSERT INTO accounts (
			id,
			email,
			username,
			phone,
			credential_hash,
			is_logged_in,
			stay_logged_in,
			hidden_in_switcher,
			is_guest,
			session_token,
			last_login_time,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			username = excluded.username,
			phone = excluded.phone,
			credential_hash = excluded.credential_hash,
			is_logged_in = excluded.is_logged_in,
			stay_logged_in = excluded.stay_logged_in,
			hidden_in_switcher = excluded.hidden_in_switcher,
			is_guest = excluded.is_guest,
			session_token = excluded.session_token,
			last_login_time = excluded.last_login_time,
			created_at = excluded.created_at;`

	getAccount = `
		SELECT
			id,
			email,
			username,
			phone,
			credential_hash,
			is_logged_in,
			stay_logged_in,
			hidden_in_switcher,
			is_guest,
			session_token,
			last_login_time,
			created_at
		FROM accounts
		WHERE id = $1;`

	listAccounts = `
		SELECT
			id,
			email,
			username,
			phone,
			credential_hash,
			is_logged_in,
			stay_logged_in,
			hidden_in_switcher,
			is_guest,
			session_token,
			last_login_time,
			created_at
		FROM accounts;`

	markAccountLoggedIn = `
		UPDATE accounts
		SET is_logged_in = TRUE,
			hidden_in_switcher = FALSE,
			session_token = $2,
			last_login_time = $3
		WHERE id = $1;`

	markAccountLoggedOut = `
		UPDATE accounts
		SET is_logged_in = FALSE,
			session_token = ''
		WHERE id = $1;`

	softRemoveAccount = `
		UPDATE accounts
		SET hidden_in_switcher = TRUE,
			is_logged_in = FALSE,
			session_token = ''
		WHERE id = $1;`

	putMailbox = `
		INSERT INTO handoff_mailbox (slot, account_id, prev_account_id, requested_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (slot) DO UPDATE SET
			account_id = excluded.account_id,
			prev_account_id = excluded.prev_account_id,
			requested_at = excluded.requested_at;`

	getMailbox = `
		SELECT account_id, prev_account_id, requested_at
		FROM handoff_mailbox
		WHERE slot = 1;`

	clearMailbox = `DELETE FROM handoff_mailbox WHERE slot = 1;`

	upsertPeer = `
		INSERT INTO bus_peers (window_id, kind, addr, last_seen)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (window_id) DO UPDATE SET
			kind = excluded.kind,
			addr = excluded.addr,
			last_seen = excluded.last_seen;`

	listLivePeers = `
		SELECT window_id, kind, addr, last_seen
		FROM bus_peers
		WHERE last_seen > $1;`

	prunePeers = `DELETE FROM bus_peers WHERE last_seen <= $1;`

	deletePeer = `DELETE FROM bus_peers WHERE window_id = $1;`
)

// accountColumns is the column list used by the squirrel-built lookup query;
// order must match scanAccount.
var accountColumns = []string{
	"id",
	"email",
	"username",
	"phone",
	"credential_hash",
	"is_logged_in",
	"stay_logged_in",
	"hidden_in_switcher",
	"is_guest",
	"session_token",
	"last_login_time",
	"created_at",
}
