package redis

// Redis key naming conventions. All keys are prefixed with "renderq:" to
// avoid collisions.

const keyPrefix = "renderq:"

// jobKey returns the Hash key for a job record: renderq:job:{id}
func jobKey(id string) string { return keyPrefix + "job:" + id }

// jobIDsKey is the Set tracking all job ids for enumeration.
const jobIDsKey = keyPrefix + "job_ids"

// pendingKey is the List holding the FIFO pending queue. Ids are pushed on
// the left and popped on the right; crash-recovered ids are pushed on the
// right so they pop first.
const pendingKey = keyPrefix + "pending"

// leasesKey is the Sorted Set of RUNNING job ids scored by lease expiry
// (unix nanoseconds), swept by the reaper.
const leasesKey = keyPrefix + "leases"
