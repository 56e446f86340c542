package app

import (
	"html"

	"github.com/cihub/seelog"
)

const logFormat = `<format id="main" format="%LEVEL %Date-%Time] (%File:%Line): %Msg%n"/>`

// InitLog builds the daemon logger. An empty logFile logs to the console.
func InitLog(logFile string) (seelog.LoggerInterface, error) {
	var logConfig string
	if len(logFile) == 0 {
		logConfig = `
			<seelog>
				<outputs formatid="main">
					<console />
				</outputs>
				<formats>
					` + logFormat + `
				</formats>
			</seelog>`
	} else {
		logConfig = `
			<seelog>
				<outputs formatid="main">
					<rollingfile type="size" filename="` + html.EscapeString(logFile) + `" maxsize="10485760" maxrolls="3"/>
				</outputs>
				<formats>
					` + logFormat + `
				</formats>
			</seelog>`
	}
	return seelog.LoggerFromConfigAsBytes([]byte(logConfig))
}
