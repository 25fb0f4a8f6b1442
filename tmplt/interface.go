package tmplt

import "html/template"

// PageData feeds the interface template: the supported UI languages for the
// selector and the inlined decorative icons.
type PageData struct {
	Languages []LanguageOption
	Default   string
	MicIcon   template.HTML
	MicOff    template.HTML
}

// LanguageOption is one entry of the language selector.
type LanguageOption struct {
	Code       string
	NativeName string
	RTL        bool
}

var HtmlPage = `<!DOCTYPE html>
<html lang="{{.Default}}">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Voice Client</title>
	<style>
		body {
			font-family: monospace;
			background: white;
			color: black;
			margin: 40px;
			line-height: 1.6;
		}
		button {
			background: white;
			color: black;
			border: 2px solid black;
			padding: 10px 20px;
			margin: 10px;
			cursor: pointer;
			font-family: monospace;
		}
		button:hover {
			background: black;
			color: white;
		}
		button svg {
			vertical-align: middle;
			margin-right: 6px;
		}
		select {
			font-family: monospace;
			padding: 8px;
			margin: 10px;
		}
		#status {
			margin: 20px 0;
			padding: 10px;
			border: 1px solid black;
		}
	</style>
</head>
<body>
	<h1>Voice Client</h1>

	<div>
		<button id="voiceToggle">{{.MicIcon}}<span id="toggleLabel">Disable voice</span></button>
		<select id="language">
			{{range .Languages}}<option value="{{.Code}}"{{if .RTL}} dir="rtl"{{end}}>{{.NativeName}}</option>
			{{end}}
		</select>
	</div>

	<div id="status">Status: Ready</div>

	<script>
		const micIcon = {{.MicIcon | printf "%s"}};
		const micOffIcon = {{.MicOff | printf "%s"}};

		let ws;
		let audioContext;
		let stream;
		let workletNode;
		let voiceDisabled = false;

		const status = document.getElementById('status');
		const toggleBtn = document.getElementById('voiceToggle');
		const toggleLabel = document.getElementById('toggleLabel');
		const language = document.getElementById('language');

		language.value = {{.Default}};
		language.onchange = () => {
			document.documentElement.lang = language.value;
		};

		function connectWebSocket() {
			const protocol = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
			const wsUrl = protocol + '//' + window.location.host + '/ws';
			ws = new WebSocket(wsUrl);
			ws.binaryType = 'arraybuffer';

			ws.onopen = () => {
				status.textContent = 'Status: Connected';
			};

			ws.onmessage = async (event) => {
				if (voiceDisabled) {
					return;
				}
				let arrayBuffer;
				if (event.data instanceof ArrayBuffer) {
					arrayBuffer = event.data;
				} else if (event.data instanceof Blob) {
					arrayBuffer = await event.data.arrayBuffer();
				} else {
					return;
				}

				const pcmData = new Float32Array(arrayBuffer);

				if (!audioContext) {
					audioContext = new AudioContext();
				}
				if (audioContext.state === 'suspended') {
					await audioContext.resume();
				}

				const audioBuffer = audioContext.createBuffer(1, pcmData.length, 44100);
				audioBuffer.getChannelData(0).set(pcmData);

				const source = audioContext.createBufferSource();
				source.buffer = audioBuffer;
				source.connect(audioContext.destination);
				source.start();
			};

			ws.onclose = () => {
				status.textContent = 'Status: Disconnected';
				setTimeout(connectWebSocket, 3000);
			};

			ws.onerror = (error) => {
				status.textContent = 'Status: Error - ' + error;
			};
		}

		async function startCapture() {
			if (!audioContext) {
				audioContext = new AudioContext();
			}
			if (audioContext.state === 'suspended') {
				await audioContext.resume();
			}

			try {
				stream = await navigator.mediaDevices.getUserMedia({
					audio: {
						sampleRate: 44100,
						channelCount: 1,
						echoCancellation: false,
						noiseSuppression: false
					}
				});
			} catch (err) {
				status.textContent = 'Status: Microphone access denied';
				return;
			}

			const source = audioContext.createMediaStreamSource(stream);
			workletNode = audioContext.createScriptProcessor(4096, 1, 1);

			workletNode.onaudioprocess = (event) => {
				const inputBuffer = event.inputBuffer.getChannelData(0);
				const pcmData = new Float32Array(inputBuffer);

				if (ws && ws.readyState === WebSocket.OPEN) {
					ws.send(pcmData.buffer);
				}
			};

			source.connect(workletNode);
			workletNode.connect(audioContext.destination);
			status.textContent = 'Status: Voice enabled';
		}

		function stopCapture() {
			if (workletNode) {
				workletNode.disconnect();
				workletNode = null;
			}
			if (stream) {
				stream.getTracks().forEach(t => t.stop());
				stream = null;
			}
			status.textContent = 'Status: Voice disabled';
		}

		toggleBtn.onclick = async () => {
			voiceDisabled = !voiceDisabled;
			if (voiceDisabled) {
				stopCapture();
				toggleBtn.innerHTML = micOffIcon + '<span id="toggleLabel">Enable voice</span>';
			} else {
				await startCapture();
				toggleBtn.innerHTML = micIcon + '<span id="toggleLabel">Disable voice</span>';
			}
		};

		connectWebSocket();
		startCapture();
	</script>
</body>
</html>`
