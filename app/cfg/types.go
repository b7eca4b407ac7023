package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	Port              string
	SchedulerKey      string
	WorkerID          string
	WorkerCount       int
	SchedulerInterval int
	JobTTLHours       int
	AIMode            string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
