package cache

import (
	"context"
	"fmt"
	"time"
)

// Key formats. Only anonymous reads are cached; authenticated reads carry
// viewer flags and always go to the DB.
const (
	EventKeyPrefix   = "event:%d"
	ProfileKeyPrefix = "profile:%d"
	EventsListKey    = "events:list:default"
)

const (
	EventTTL      = 5 * time.Minute
	ProfileTTL    = 5 * time.Minute
	EventsListTTL = time.Minute
)

func EventKey(eventID uint) string {
	return fmt.Sprintf(EventKeyPrefix, eventID)
}

func ProfileKey(profileID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, profileID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateEvent drops the event entry and the default listing, which embeds
// the event's aggregates.
func InvalidateEvent(ctx context.Context, eventID uint) {
	Invalidate(ctx, EventKey(eventID))
	Invalidate(ctx, EventsListKey)
}

func InvalidateProfile(ctx context.Context, profileID uint) {
	Invalidate(ctx, ProfileKey(profileID))
}
