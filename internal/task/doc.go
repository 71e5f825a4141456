// Package task provides the per-frame hook scheduler.
//
// Scripts and the shell register named hooks that run once per frame, after
// the frame's events were dispatched:
//
//	mgr := task.NewManager()
//	mgr.Add(task.Task{
//	    Name:  "PlayerTask",
//	    Owner: "Player",
//	    Fn: func(f task.Frame) task.Status {
//	        player.Update(f.DT)
//	        return task.Cont
//	    },
//	})
//
//	// in the frame loop
//	mgr.Poll(frame)
//
// # Ordering
//
// Due tasks run ordered by Sort (ascending), then Priority (descending), then
// insertion order. A task returning Done is removed after it ran. Delay
// postpones the first run by that many Poll calls.
//
// # Reentrancy
//
// Hooks may add and remove tasks. A task added during Poll first runs on the
// next Poll. A task removed during Poll is skipped if it has not run yet.
//
// # Panics
//
// Every hook runs through a dispatch.Executor. A panic is recovered, logged
// and counted; the task stays registered.
package task
