package models

// SetUnitTreeCacheWriteHook installs f between reconstruction and the cache
// write of GetUnitTree and returns a func restoring the previous hook.
func SetUnitTreeCacheWriteHook(f func()) (restore func()) {
	prev := unitTreeCacheWriteHook
	unitTreeCacheWriteHook = f
	return func() { unitTreeCacheWriteHook = prev }
}
