package actionitem

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	text := "Action items:\n" +
		"- Send the revised budget (@sara) [Friday]\n" +
		"* Book the demo room\n" +
		"• Follow up with vendor (@omar)\n" +
		"1. Publish meeting notes [next week]\n" +
		"not a bullet line\n" +
		"-   \n"

	got := Parse(text)
	want := []Item{
		{Text: "Send the revised budget", Owner: "sara", Deadline: "Friday"},
		{Text: "Book the demo room"},
		{Text: "Follow up with vendor", Owner: "omar"},
		{Text: "Publish meeting notes", Deadline: "next week"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestParseEmpty(t *testing.T) {
	if items := Parse(""); items != nil {
		t.Errorf("Parse(\"\") = %+v, want nil", items)
	}
	if items := Parse("no bullets here\njust prose"); items != nil {
		t.Errorf("prose input yielded items: %+v", items)
	}
}
