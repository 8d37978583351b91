// Package config holds the compile-time tunables of the kernel.
//
// Values mirror the authoritative config.h of the original implementation:
// array sizes must be Go constants since the structures they size (the
// ready-list pool, the async queues, ...) are fixed-capacity by design —
// there is no dynamic memory management in this kernel (spec Non-goals).
package config

// Task and pool sizing.
const (
	MaxTasks = 16 // MOS_CONF_MAX_TASK_NUM
	PoolSize = 16 // MOS_CONF_POOL_SIZE
	PageSize = 1024 // MOS_CONF_PAGE_SIZE, in 32-bit words
	NameSize = 8 // MOS_CONF_USER_NAME_SIZE
)

// Scheduling.
const (
	TickHz     = 1000 // MOS_CONF_SYSTICK
	PriMax     = 0     // MOS_CONF_PRI_MAX, highest priority
	PriMin     = 127   // MOS_CONF_PRI_MIN, lowest priority
	PriInvalid = -1    // MOS_CONF_PRI_INV
	TimeSlice  = 50    // MOS_CONF_TIME_SLICE, in ticks
)

// SchedPolicy names a scheduling discipline. PreemptPri is the default and
// matches §4.2's next_tcb policy. The scheduler decision function
// (kernel/task's nextTCB) does not read Policy and always applies
// PreemptPri, so setting RoundRobin has no effect.
type SchedPolicy uint8

const (
	RoundRobin SchedPolicy = iota
	PreemptPri
)

// Policy is the scheduler policy selector knob (MOS_CONF_SCHED_POLICY); see
// SchedPolicy.
var Policy = PreemptPri

// Shell I/O sizing, carried for the external console collaborator even
// though the shell dispatcher itself is out of scope (spec §1).
const (
	ShellBufSize    = 32 // MOS_CONF_SHELL_BUF_SIZE
	ShellUsrCmdSize = 8  // MOS_CONF_SHELL_USR_CMD_SIZE
)

// Async executor sizing.
const (
	AsyncQueueCap   = 256         // MOS_CONF_ASYNC_TASK_MAX
	AsyncLambdaSize = 32          // MOS_CONF_ASYNC_TASK_SIZE, captured-object bytes
	AsyncSleeperCap = AsyncQueueCap // must not exceed the ready-queue capacity
	AsyncFrameSize  = 64          // MOS_CONF_ASYNC_FRAME_SIZE
	AsyncPoolCap    = 200         // MOS_CONF_ASYNC_POOL_MAX
	AsyncUsePool    = false       // MOS_CONF_ASYNC_USE_POOL
)
