package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/models"
)

// peerRepository implements [PeerRepository] over the bus_peers table.
type peerRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewPeerRepository constructs a [PeerRepository] backed by the provided
// database connection and logger.
func NewPeerRepository(db *DB, logger *logger.Logger) PeerRepository {
	logger.Debug().Msg("creating peer repository")
	return &peerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *peerRepository) Upsert(ctx context.Context, peer models.Peer) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, upsertPeer, peer.WindowID, string(peer.Kind), peer.Addr, peer.LastSeen)
	if err != nil {
		log.Err(err).
			Str("func", "*peerRepository.Upsert").
			Str("window_id", peer.WindowID).
			Msg("failed to upsert bus peer")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifyError(err))
	}

	return nil
}

func (r *peerRepository) ListLive(ctx context.Context, seenAfter time.Time) ([]models.Peer, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listLivePeers, seenAfter)
	if err != nil {
		log.Err(err).Str("func", "*peerRepository.ListLive").Msg("failed to query live peers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classifyError(err))
	}
	defer rows.Close()

	var peers []models.Peer
	for rows.Next() {
		var peer models.Peer
		var kind string
		if scanErr := rows.Scan(&peer.WindowID, &kind, &peer.Addr, &peer.LastSeen); scanErr != nil {
			log.Err(scanErr).Str("func", "*peerRepository.ListLive").Msg("failed to scan peer row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		peer.Kind = models.WindowKind(kind)
		peers = append(peers, peer)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*peerRepository.ListLive").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating peer rows: %w", r.db.classifyError(rowsErr))
	}

	return peers, nil
}

func (r *peerRepository) Prune(ctx context.Context, seenBefore time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, prunePeers, seenBefore)
	if err != nil {
		log.Err(err).Str("func", "*peerRepository.Prune").Msg("failed to prune peers")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifyError(err))
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned row count: %w", err)
	}

	return pruned, nil
}

func (r *peerRepository) Delete(ctx context.Context, windowID string) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, deletePeer, windowID)
	if err != nil {
		log.Err(err).
			Str("func", "*peerRepository.Delete").
			Str("window_id", windowID).
			Msg("failed to delete bus peer")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifyError(err))
	}

	return nil
}
