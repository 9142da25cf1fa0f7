package storage

// Persisted state layout: one JSON blob per well-known key. The names match
// the browser build's localStorage keys so a dump from either side reads the
// same.
const (
	KeyDemoMode  = "estudia-pro-demo-mode"
	KeyAuthToken = "authToken"
	KeySyncMark  = "estudia-pro-demo-sync"

	KeySubjects           = "estudia-pro-subjects"
	KeyCommunityResources = "estudia-pro-community-resources"
	KeyFormularies        = "estudia-pro-formularies"
	KeyForums             = "estudia-pro-forums"
	KeyUserStates         = "estudia-pro-user-states"
	KeyExtraUsers         = "estudia-pro-extra-users"
	KeyAdminUsers         = "estudia-pro-admin-users"
	KeyTutorProfiles      = "estudia-pro-tutor-profiles"

	// Prefix for blob records when the blob store runs on redis
	BlobKeyPrefix = "estudia-pro-demo-files:"
)

// NamespaceKeys lists every namespace wiped by the reset tool.
func NamespaceKeys() []string {
	return []string{
		KeyDemoMode,
		KeyAuthToken,
		KeySyncMark,
		KeySubjects,
		KeyCommunityResources,
		KeyFormularies,
		KeyForums,
		KeyUserStates,
		KeyExtraUsers,
		KeyAdminUsers,
		KeyTutorProfiles,
	}
}
