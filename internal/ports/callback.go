package ports

// Callback receives the single terminal outcome of a dispatch job.
// Exactly one of the two methods is called, exactly once, per job.
type Callback interface {
	// OnComplete is called once every fix of the job was accepted.
	OnComplete()

	// OnFailure is called on the first failure of any kind: encoding,
	// transport, non-200 status, or queue admission.
	OnFailure()
}
