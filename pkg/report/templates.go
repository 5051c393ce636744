/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML templates for probs reports. Provides a beautiful, modern,
and responsive web interface with marginal charts, joint tables, independence
matrices, and query session results.
*/

package report

// reportTemplate is the main HTML template for the report
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Probs Report</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            color: #333;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 20px;
        }

        .header {
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 20px;
            padding: 30px;
            margin-bottom: 30px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
            text-align: center;
        }

        .header h1 {
            color: #4a5568;
            font-size: 2.5rem;
            margin-bottom: 10px;
            font-weight: 700;
        }

        .header p {
            color: #718096;
            font-size: 1.1rem;
        }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }

        .stat-card {
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 15px;
            padding: 25px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
            transition: transform 0.3s ease, box-shadow 0.3s ease;
        }

        .stat-card:hover {
            transform: translateY(-5px);
            box-shadow: 0 12px 40px rgba(0, 0, 0, 0.15);
        }

        .stat-card h3 {
            color: #4a5568;
            font-size: 1.2rem;
            margin-bottom: 15px;
        }

        .stat-card .value {
            font-size: 2.5rem;
            font-weight: 700;
            color: #2d3748;
            margin-bottom: 5px;
        }

        .stat-card .label {
            color: #718096;
            font-size: 0.9rem;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }

        .charts-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(500px, 1fr));
            gap: 30px;
            margin-bottom: 30px;
        }

        .chart-container {
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 15px;
            padding: 25px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
        }

        .chart-container h3 {
            color: #4a5568;
            font-size: 1.3rem;
            margin-bottom: 20px;
            text-align: center;
        }

        .chart-wrapper {
            position: relative;
            height: 300px;
        }

        .panel {
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 15px;
            padding: 25px;
            margin-bottom: 30px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
        }

        .panel h3 {
            color: #4a5568;
            font-size: 1.3rem;
            margin-bottom: 20px;
        }

        table {
            width: 100%;
            border-collapse: collapse;
        }

        th, td {
            padding: 10px 14px;
            text-align: left;
            border-bottom: 1px solid #e2e8f0;
            color: #2d3748;
        }

        th {
            color: #4a5568;
            text-transform: uppercase;
            font-size: 0.8rem;
            letter-spacing: 0.5px;
        }

        tr:hover td {
            background: rgba(102, 126, 234, 0.05);
        }

        .verdict {
            padding: 4px 12px;
            border-radius: 20px;
            font-size: 0.8rem;
            font-weight: 600;
            text-transform: uppercase;
        }

        .verdict.yes { background: #c6f6d5; color: #38a169; }
        .verdict.no { background: #fed7d7; color: #c53030; }

        .query-error {
            color: #c53030;
            font-size: 0.9rem;
        }

        .footer {
            text-align: center;
            padding: 30px;
            color: rgba(255, 255, 255, 0.8);
            font-size: 0.9rem;
        }

        @media (max-width: 768px) {
            .container {
                padding: 10px;
            }

            .header h1 {
                font-size: 2rem;
            }

            .charts-grid {
                grid-template-columns: 1fr;
            }

            .stats-grid {
                grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM"}} | Session: {{.SessionID}} | Version: {{.Version}}</p>
            <p>Source: {{.InputPath}}</p>
        </div>

        <div class="stats-grid">
            <div class="stat-card">
                <h3>Variables</h3>
                <div class="value">{{len .Variables}}</div>
                <div class="label">Random Variables</div>
            </div>
            <div class="stat-card">
                <h3>Assignments</h3>
                <div class="value">{{.Assignments}}</div>
                <div class="label">Joint Outcomes</div>
            </div>
            <div class="stat-card">
                <h3>Total Mass</h3>
                <div class="value">{{.Total}}</div>
                <div class="label">Sum of Probabilities</div>
            </div>
            <div class="stat-card">
                <h3>Entropy</h3>
                <div class="value">{{.Entropy}}</div>
                <div class="label">Bits</div>
            </div>
        </div>

        <div class="charts-grid">
            <div class="chart-container">
                <h3>Marginal Probabilities</h3>
                <div class="chart-wrapper">
                    <canvas id="marginalChart"></canvas>
                </div>
            </div>
            <div class="chart-container">
                <h3>Query Durations</h3>
                <div class="chart-wrapper">
                    <canvas id="queryChart"></canvas>
                </div>
            </div>
        </div>

        <div class="panel">
            <h3>Variables</h3>
            <table>
                <tr><th>Name</th><th>States</th></tr>
                {{range .Variables}}
                <tr><td>{{.Name}}</td><td>{{range $i, $s := .States}}{{if $i}}, {{end}}{{$s}}{{end}}</td></tr>
                {{end}}
            </table>
        </div>

        <div class="panel">
            <h3>Joint Distribution</h3>
            <table>
                <tr><th>Assignment</th><th>P</th></tr>
                {{range .JointRows}}
                <tr><td>{{.Labels}}</td><td>{{.Prob}}</td></tr>
                {{end}}
            </table>
        </div>

        <div class="panel">
            <h3>Pairwise Independence</h3>
            <table>
                <tr><th>X</th><th>Y</th><th>Independent</th></tr>
                {{range .Pairs}}
                <tr>
                    <td>{{.X}}</td>
                    <td>{{.Y}}</td>
                    <td>{{if .Independent}}<span class="verdict yes">Yes</span>{{else}}<span class="verdict no">No</span>{{end}}</td>
                </tr>
                {{end}}
            </table>
        </div>

        {{if .Queries}}
        <div class="panel">
            <h3>Queries</h3>
            <table>
                <tr><th>Query</th><th>Result</th><th>Duration</th></tr>
                {{range .Queries}}
                <tr>
                    <td>{{.Query}}</td>
                    <td>{{if .Error}}<span class="query-error">{{.Error}}</span>{{else}}{{.Result}}{{end}}</td>
                    <td>{{.Duration}}</td>
                </tr>
                {{end}}
            </table>
        </div>
        {{end}}
    </div>

    <div class="footer">
        <p>probs - probability systems engine</p>
    </div>

    <script>
        Chart.defaults.font.family = "'Segoe UI', Tahoma, Geneva, Verdana, sans-serif";
        Chart.defaults.color = '#4a5568';

        const marginalChart = new Chart(
            document.getElementById('marginalChart'),
            {{.Charts.MarginalChart | json}}
        );

        const queryChart = new Chart(
            document.getElementById('queryChart'),
            {{.Charts.QueryChart | json}}
        );
    </script>
</body>
</html>`
