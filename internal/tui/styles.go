package tui

import "github.com/gerunddev/linkmark/internal/styles"

var (
	titleStyle   = styles.TitleStyle
	labelStyle   = styles.LabelStyle
	helpStyle    = styles.HelpStyle
	successStyle = styles.SuccessStyle
	errorStyle   = styles.ErrorStyle
	warningStyle = styles.WarningStyle
	tableStyle   = styles.TableStyle
)
