package cache

import (
	"fmt"
	"time"
)

const (
	versionKeyPrefix = "cache:version:%s"
	listingKeyPrefix = "groups:listing:v%d:%s"
	groupKeyPrefix   = "groups:%d:v%d"
)

// ListingNamespace versions every cached group listing.
const ListingNamespace = "group_listing"

const (
	ListingTTL = time.Minute
	GroupTTL   = 5 * time.Minute
)

func VersionKey(namespace string) string {
	return fmt.Sprintf(versionKeyPrefix, namespace)
}

// ListingKey builds the key for one filtered listing at a version.
func ListingKey(version int64, filterHash string) string {
	return fmt.Sprintf(listingKeyPrefix, version, filterHash)
}

// GroupNamespace versions one group's cached record.
func GroupNamespace(groupID uint) string {
	return fmt.Sprintf("group:%d", groupID)
}

// GroupKey builds the key for a group record at a version.
func GroupKey(groupID uint, version int64) string {
	return fmt.Sprintf(groupKeyPrefix, groupID, version)
}
