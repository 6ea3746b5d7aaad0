//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// JobState represents the lifecycle state of a download job
// ENUM(created,acknowledged,resolving,resolution_failed,enumerating,downloading,reporting,done,interrupted)
type JobState string

// SlotPolicy decides what happens to a command arriving while a job runs
// ENUM(reject,queue)
type SlotPolicy string
