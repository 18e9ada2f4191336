package memory

import "context"

type followRepository struct{ *db }

func (r *followRepository) Add(_ context.Context, followerID, followeeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey{followerID, followeeID}
	if _, ok := r.follows[key]; ok {
		return false, nil
	}
	r.follows[key] = r.timestamp()
	return true, nil
}

func (r *followRepository) Remove(_ context.Context, followerID, followeeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey{followerID, followeeID}
	if _, ok := r.follows[key]; !ok {
		return false, nil
	}
	delete(r.follows, key)
	return true, nil
}

func (r *followRepository) Exists(_ context.Context, followerID, followeeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.follows[followKey{followerID, followeeID}]
	return ok, nil
}

func (r *followRepository) CheckFollows(_ context.Context, followerID int64, followeeIDs []int64) (map[int64]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int64]bool, len(followeeIDs))
	for _, id := range followeeIDs {
		_, result[id] = r.follows[followKey{followerID, id}]
	}
	return result, nil
}
