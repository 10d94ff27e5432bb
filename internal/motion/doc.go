// Package motion compiles motion targets into controller instruction text.
//
// A Target is built once from a pose or a joint set plus its motion
// parameters, and carries the instruction for both supported dialects:
//
//	ABB RAPID: MoveL [[500, 0, 600],[1, 0, 0, 0], cData, eAxis], v200, DefaultZone, DefaultTool \Wobj:=Default;
//	KUKA KRL:  LIN {E6POS: X 500, Y 0, Z 600, A 0, B 0, C 0, E1 0, E2 0, E3 0, E4 0} C_VEL
//
// Construction never fails. Missing parameters fall back to defaults, and a
// dialect that cannot express the requested motion leaves its text empty and
// records a diagnostic instead.
//
// Positions are millimetres, joint values radians, Euler angles degrees.
package motion
