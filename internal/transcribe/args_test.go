package transcribe

import (
	"strings"
	"testing"
)

func TestFFmpegArgs(t *testing.T) {
	got := strings.Join(ffmpegArgs("in.mp4", "tmp.wav"), " ")
	want := "-hide_banner -loglevel error -y -i in.mp4 -vn -af " +
		"pan=mono|c0=0.35*FL+0.35*FR+0.80*FC+0.15*SL+0.15*SR,loudnorm=I=-16:LRA=11:TP=-1.5 " +
		"-ar 16000 -c:a pcm_s16le tmp.wav"
	if got != want {
		t.Fatalf("ffmpeg args\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWhisperArgsDefaults(t *testing.T) {
	cfg, err := Resolve(Params{InputPath: strPtr("in")}, Environment{NumCPU: 4})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got := strings.Join(whisperArgs(cfg, "tmp.wav", "out/talk"), " ")
	want := "-m models/ggml-large-v3.bin -f tmp.wav -l auto -tr -t 4 -bs 8 -bo 8 -nth 0.75 -mc 0 " +
		"--suppress-nst --vad -vm models/ggml-silero-v6.2.0.bin -vt 0.35 -vspd 200 -vsd 250 -vp 80 " +
		"-ml 60 -osrt -of out/talk -pp -sow"
	if got != want {
		t.Fatalf("whisper args\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWhisperArgsOptionalFlags(t *testing.T) {
	cfg := Config{ModelPath: "m", VADModelPath: "v", Language: "en", Threads: 1, VADThreshold: 0.5, NoSpeechThold: 1}
	args := whisperArgs(cfg, "a.wav", "b")
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-tr") || strings.Contains(joined, "-sow") {
		t.Fatalf("disabled flags present: %s", joined)
	}
	if !strings.Contains(joined, "-vt 0.5 ") || !strings.Contains(joined, "-nth 1 ") {
		t.Fatalf("unexpected float rendering: %s", joined)
	}
	if args[len(args)-1] != "-pp" {
		t.Fatalf("expected -pp last, got %q", args[len(args)-1])
	}
}
