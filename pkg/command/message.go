package command

import (
	"errors"
	"fmt"

	"go.minekube.com/brigodier"
	"go.minekube.com/common/minecraft/color"
	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/cmdarg/pkg/argument"
)

// ErrorMessage renders err into a red chat message for the invoker.
//
// Argument parse failures get a message per error kind with the
// offending input highlighted. Other errors are shown verbatim.
func ErrorMessage(err error) component.Component {
	var pErr *argument.ParseError
	if errors.As(err, &pErr) {
		return parseErrorMessage(pErr)
	}
	var sErr *brigodier.CommandSyntaxError
	if errors.As(err, &sErr) {
		return red(sErr.Error())
	}
	return red(err.Error())
}

func red(content string) *component.Text {
	return &component.Text{Content: content, S: component.Style{Color: color.Red}}
}

func parseErrorMessage(err *argument.ParseError) component.Component {
	msg := red("")
	input := &component.Text{Content: err.Input, S: component.Style{Color: color.Yellow}}
	switch err.Kind {
	case argument.NoInputProvided:
		msg.Content = fmt.Sprintf("Missing argument for %s.", err.Parser)
		return msg
	case argument.UnknownEnumValue:
		msg.Content = fmt.Sprintf("Unknown %s ", err.Parser)
		msg.Extra = []component.Component{input, red(".")}
	case argument.MalformedRange:
		msg.Content = "Invalid range "
		msg.Extra = []component.Component{input}
	case argument.UnsupportedPlatformVersion:
		msg.Content = "Entity selectors are not supported on this server version."
		return msg
	case argument.AmbiguousSelectorResult:
		msg.Content = "Only one entity is allowed, but "
		msg.Extra = []component.Component{input, red(" allows more than one.")}
		return msg
	case argument.MalformedSelector:
		msg.Content = "Invalid entity selector "
		msg.Extra = []component.Component{input}
	case argument.NoEntityFound:
		msg.Content = "No entity was found for "
		msg.Extra = []component.Component{input, red(".")}
		return msg
	default:
		msg.Content = fmt.Sprintf("Invalid %s ", err.Parser)
		msg.Extra = []component.Component{input}
	}
	if err.Cause != nil {
		msg.Extra = append(msg.Extra, red(": "+err.Cause.Error()))
	}
	return msg
}
