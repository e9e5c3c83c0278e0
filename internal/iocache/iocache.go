package iocache

import (
	"sync"

	"github.com/baijiangliang/year2018/internal/contract"
)

// CacheStoreManager hands out the stores opened by InitCaching.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetHistoryStore returns the history CacheStore, or nil before InitCaching.
func (mgr *CacheStoreManager) GetHistoryStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
