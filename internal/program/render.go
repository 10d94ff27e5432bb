package program

import (
	"strconv"
	"strings"

	"github.com/roach88/axis/internal/robot"
)

// Render returns the program as controller source text: an ABB RAPID module
// with a main procedure, or a KUKA KRL DEF routine. Instructions with no
// form in the dialect are written as comments carrying their diagnostics.
//
//	MODULE pick
//	  PERS speeddata Fast := [250, 30, 5000, 1000];
//	  PROC main()
//	    AccSet 35, 60;
//	    MoveL [[500, 0, 600],[1, 0, 0, 0], cData, eAxis], Fast, DefaultZone, DefaultTool \Wobj:=Default;
//	  ENDPROC
//	ENDMODULE
func (p *Program) Render() string {
	return strings.Join(p.Lines(), "\n") + "\n"
}

// Lines returns the rendered program one line at a time. It is what the
// program hash is computed over, so it carries no run ID or timestamp.
func (p *Program) Lines() []string {
	if p.Manufacturer == robot.KUKA {
		return p.krlLines()
	}
	return p.rapidLines()
}

func (p *Program) rapidLines() []string {
	lines := []string{"MODULE " + p.Name}
	for _, d := range p.Declarations {
		lines = appendIndented(lines, "  ", d)
	}
	lines = append(lines, "  PROC main()")
	if p.Acceleration != "" {
		lines = append(lines, "    "+p.Acceleration)
	}
	for _, in := range p.Instructions {
		lines = append(lines, "    "+instructionLine(in, "!"))
	}
	return append(lines, "  ENDPROC", "ENDMODULE")
}

func (p *Program) krlLines() []string {
	lines := []string{"DEF " + p.Name + "()"}
	for _, d := range p.Declarations {
		lines = appendIndented(lines, "  ", d)
	}
	for _, in := range p.Instructions {
		for _, stmt := range in.Setup {
			lines = append(lines, "  "+stmt)
		}
		lines = append(lines, "  "+instructionLine(in, ";"))
	}
	return append(lines, "END")
}

// instructionLine returns an instruction's code, or a comment in its place.
func instructionLine(in Instruction, comment string) string {
	if in.Code != "" {
		return in.Code
	}
	msg := strings.Join(in.Diagnostics, " ")
	if msg == "" {
		msg = in.Motion.String() + " move skipped."
	}
	return comment + " " + msg
}

// appendIndented appends each line of a possibly multi-line text.
func appendIndented(lines []string, indent, text string) []string {
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, indent+l)
	}
	return lines
}

func formatSeq(seq int64) string {
	return "#" + strconv.FormatInt(seq, 10)
}
