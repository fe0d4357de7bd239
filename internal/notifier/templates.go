package notifier

import "fmt"

const reminderTemplate = `<html>
<body>
  <p>Hi %s,</p>
  <p>It's been a while since your last visit, and new quizzes may be waiting
  for you. Log in and keep your streak going!</p>
  <p>— The Quiz Master team</p>
</body>
</html>`

const monthlyReportTemplate = `<html>
<body>
  <p>Hi %s,</p>
  <p>Here is your activity summary for the last month:</p>
  <ul>
    <li>Quizzes attempted: %d</li>
    <li>Average score: %.2f</li>
  </ul>
  <p>— The Quiz Master team</p>
</body>
</html>`

func reminderBody(name string) string {
	return fmt.Sprintf(reminderTemplate, name)
}

func monthlyReportBody(name string, attempted int, avgScore float64) string {
	return fmt.Sprintf(monthlyReportTemplate, name, attempted, avgScore)
}
