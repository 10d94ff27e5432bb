// Package kinematics solves the inverse kinematics of six-axis offset-wrist
// arms (shoulder and elbow axes parallel, wrist axes orthogonal) in closed form.
//
// The solver is a pure function of a pose and a robot.Model. It treats every
// trigonometric domain violation as soft: the affected joint falls back to a
// fixed angle, a diagnostic string is recorded, and six angles are always
// returned. "Target out of reach." is advisory, never an abort, so an editor
// can keep animating a preview while the user drags a target.
//
// Only the branch selected by Model.Config is computed; there is no
// enumeration of the eight solution branches.
package kinematics
