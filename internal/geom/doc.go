// Package geom provides the rigid-transform vocabulary shared by the inverse
// kinematics solver and the motion target compiler.
//
// Positions and directions are github.com/golang/geo/r3 vectors and
// orientations are gonum quaternions. A Pose is a rotation matrix plus a
// translation; a Plane is the same frame expressed as an origin and three
// axes, which is how targets, tool centre points and work objects are authored.
//
// All types are values. Nothing in this package mutates its receiver.
package geom
